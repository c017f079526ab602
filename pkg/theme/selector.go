package theme

import (
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

var (
	ErrUnknownTheme   = errors.New("theme: unknown theme")
	ErrUnknownVariant = errors.New("theme: unknown variant")
)

// Selector resolves a theme name and variant to a selection. It implements
// gotheme.ThemeSelector.
type Selector struct {
	manifests map[string]*gotheme.Manifest
	fallback  string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; the first one becomes the default. With
// no arguments the built-in manifest is used.
func NewSelector(manifests ...*gotheme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Manifest()}
	}
	registry := gotheme.NewRegistry()
	s := &Selector{
		manifests: make(map[string]*gotheme.Manifest, len(manifests)),
	}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("theme: register %q: %w", m.Name, err)
		}
		s.manifests[m.Name] = m
		if s.fallback == "" {
			s.fallback = m.Name
		}
	}
	if s.fallback == "" {
		return nil, errors.New("theme: no manifests supplied")
	}
	return s, nil
}

// Select returns the manifest called name (or the default when empty) with
// the requested variant. An empty variant selects the base tokens.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
	}
	return &gotheme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// Resolve selects and converts in one step.
func (s *Selector) Resolve(name, variant string) (*gotheme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}
