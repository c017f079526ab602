// Package i18n loads YAML message catalogs and serves translations for the
// renderers and validation messages.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-roleform/pkg/registration"
)

// DefaultLocale is used when a requested locale has no catalog.
const DefaultLocale = "en"

var (
	// ErrMissingKey is returned when neither the locale nor the fallback
	// define a key.
	ErrMissingKey = errors.New("i18n: missing translation")

	//go:embed locales/*.yaml
	embedded embed.FS

	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog maps locale -> dotted key -> message.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// New returns an empty catalog that falls back to fallback.
func New(fallback string) *Catalog {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultLocale
	}
	return &Catalog{fallback: fallback, messages: make(map[string]map[string]string)}
}

// Default returns the catalog built from the embedded locales.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(embedded, "locales", DefaultLocale)
	})
	return defaultCatalog, defaultErr
}

// MustDefault panics when the embedded catalogs are invalid.
func MustDefault() *Catalog {
	catalog, err := Default()
	if err != nil {
		panic(err)
	}
	return catalog
}

// LoadFS reads every "<locale>.yaml" file in dir.
func LoadFS(fsys fs.FS, dir, fallback string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", dir, err)
	}
	catalog := New(fallback)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (path.Ext(name) != ".yaml" && path.Ext(name) != ".yml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if err := catalog.Add(strings.TrimSuffix(name, path.Ext(name)), raw); err != nil {
			return nil, err
		}
	}
	if !catalog.Has(catalog.fallback) {
		return nil, fmt.Errorf("i18n: fallback locale %q has no catalog", catalog.fallback)
	}
	return catalog, nil
}

// Add merges a YAML document into locale. Nested keys are joined with dots.
func (c *Catalog) Add(locale string, raw []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)

	locale = strings.ToLower(strings.TrimSpace(locale))
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(flat))
	}
	for key, value := range flat {
		c.messages[locale][key] = value
	}
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Locales lists the loaded locales sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether locale has a catalog.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[strings.ToLower(locale)]
	return ok
}

// Resolve maps a requested locale such as "ko-KR" onto a loaded one,
// falling back to the catalog default.
func (c *Catalog) Resolve(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(locale, "_", "-")))
	if locale == "" {
		return c.fallback
	}
	if c.Has(locale) {
		return locale
	}
	if base, _, ok := strings.Cut(locale, "-"); ok && c.Has(base) {
		return base
	}
	return c.fallback
}

// Translate returns the message for key. Args are applied with fmt.Sprintf.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	msg, ok := c.lookup(c.Resolve(locale), key)
	if !ok {
		msg, ok = c.lookup(c.fallback, key)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return msg, nil
}

// T is Translate returning the key itself when nothing matches.
func (c *Catalog) T(locale, key string, args ...any) string {
	msg, err := c.Translate(locale, key, args...)
	if err != nil {
		return key
	}
	return msg
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msg, ok := c.messages[locale][key]
	return msg, ok
}

// Messages adapts the "validation.<field>.<rule>" entries of locale to
// registration.Messages.
func (c *Catalog) Messages(locale string) registration.Messages {
	return registration.MessagesFunc(func(field, rule string) string {
		msg, err := c.Translate(locale, "validation."+field+"."+rule)
		if err != nil {
			return ""
		}
		return msg
	})
}

// RoleOptions returns the role list with labels in locale.
func (c *Catalog) RoleOptions(locale string) []registration.RoleOption {
	options := registration.RoleOptions()
	for i := range options {
		if label, err := c.Translate(locale, "roles."+options[i].Value.String()); err == nil {
			options[i].Label = label
		}
	}
	return options
}
