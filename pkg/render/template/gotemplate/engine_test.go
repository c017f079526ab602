package gotemplate_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-roleform/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"global.tmpl":     {Data: []byte("env={{ settings.env }}")},
		"filter.tmpl":     {Data: []byte("{{ name|shout_test }}")},
		"contains.tmpl":   {Data: []byte("{% if tags|contains:\"b\" %}yes{% else %}no{% endif %}")},
		"func.tmpl":       {Data: []byte("{{ greet(name) }}")},
		"escape.tmpl":     {Data: []byte("{{ raw }}|{{ raw|safe }}")},
		"partials/a.tmpl": {Data: []byte("A{% include \"b.tmpl\" %}")},
		"partials/b.tmpl": {Data: []byte("B")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)
	var buf strings.Builder
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	got, err := engine.RenderTemplate("global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	got, err := engine.RenderTemplate("filter", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("got %q", got)
	}
}

func TestContainsFilter(t *testing.T) {
	engine := newEngine(t)
	for tags, want := range map[string]string{"ab": "yes", "ac": "no", "": "no"} {
		list := []any{}
		for _, r := range tags {
			list = append(list, string(r))
		}
		got, err := engine.RenderTemplate("contains", map[string]any{"tags": list})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != want {
			t.Fatalf("tags %v: got %q want %q", list, got, want)
		}
	}
}

func TestTemplateFuncsAndIncludes(t *testing.T) {
	engine := newEngine(t, gotemplate.WithTemplateFuncs(map[string]any{
		"greet": func(name string) string { return "hi " + name },
	}))
	got, err := engine.RenderTemplate("func", map[string]any{"name": "Kim"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hi Kim" {
		t.Fatalf("got %q", got)
	}

	got, err = engine.RenderTemplate("partials/a", nil)
	if err != nil {
		t.Fatalf("render include: %v", err)
	}
	if got != "AB" {
		t.Fatalf("include got %q", got)
	}
}

func TestAutoescape(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"raw": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "&lt;b&gt;|<b>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderStringAndStructData(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Lee"}
	got, err := engine.RenderString("{{ name }}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Lee" {
		t.Fatalf("got %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
