package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-roleform/pkg/visibility"
)

type node interface {
	eval(ctx visibility.Context) bool
}

type constNode bool

func (n constNode) eval(visibility.Context) bool { return bool(n) }

type orNode []node

func (n orNode) eval(ctx visibility.Context) bool {
	for _, term := range n {
		if term.eval(ctx) {
			return true
		}
	}
	return false
}

type andNode []node

func (n andNode) eval(ctx visibility.Context) bool {
	for _, term := range n {
		if !term.eval(ctx) {
			return false
		}
	}
	return true
}

type notNode struct {
	inner node
}

func (n notNode) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type truthyNode struct {
	name string
}

func (n truthyNode) eval(ctx visibility.Context) bool {
	value, _ := resolve(ctx, n.name)
	return truthy(value)
}

type compareNode struct {
	name   string
	want   any
	negate bool
}

func (n compareNode) eval(ctx visibility.Context) bool {
	got, _ := resolve(ctx, n.name)
	return equal(got, n.want) != n.negate
}

func equal(got, want any) bool {
	switch w := want.(type) {
	case nil:
		return got == nil
	case bool:
		return asBool(got) == w
	case float64:
		f, ok := asNumber(got)
		return ok && f == w
	case string:
		return asString(got) == w
	default:
		return false
	}
}

// resolve reads name from ctx. "extras.x" reads Extras; other names read
// Values, first as a literal key then as a dot path.
func resolve(ctx visibility.Context, name string) (any, bool) {
	source := ctx.Values
	if rest, ok := strings.CutPrefix(name, "extras."); ok {
		source, name = ctx.Extras, rest
	}
	if source == nil || name == "" {
		return nil, false
	}
	if value, ok := source[name]; ok {
		return value, true
	}

	var current any = source
	for _, part := range strings.Split(name, ".") {
		switch m := current.(type) {
		case map[string]any:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	if f, ok := asNumber(value); ok {
		return f != 0
	}
	return true
}

func asBool(value any) bool {
	if s, ok := value.(string); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return parsed
		}
	}
	return truthy(value)
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case *int:
		if v == nil {
			return 0, false
		}
		return float64(*v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
