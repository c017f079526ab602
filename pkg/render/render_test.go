package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("vanilla"))
	if err := registry.Register(namedRenderer("tui")); err != nil {
		t.Fatalf("register tui: %v", err)
	}
	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected empty name error")
	}

	def, err := registry.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if def.Name() != "vanilla" {
		t.Fatalf("default = %s, want vanilla", def.Name())
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("preact") {
		t.Fatalf("Has reported wrong membership")
	}
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return "", errors.New("missing")
}

func TestLocalizeFormModel(t *testing.T) {
	original := model.FormModel{
		Summary: "Fallback title",
		UIHints: map[string]string{
			model.HintTitleKey:       "form.title",
			model.HintSubmitLabelKey: "form.submit",
		},
		Fields: []model.Field{
			{
				Name:  "role",
				Label: "Role",
				Enum:  []any{"developer", "planner"},
				UIHints: map[string]string{
					model.HintLabelKey:              "fields.role.label",
					model.HintPlaceholderKey:        "fields.role.placeholder",
					render.HintOptionLabelKeyPrefix: "roles",
				},
			},
			{
				Name:  "bio",
				Label: "Bio",
				UIHints: map[string]string{
					model.HintHelpTextKey: "fields.bio.help",
				},
			},
		},
	}
	form := original
	render.LocalizeFormModel(&form, render.RenderOptions{
		Locale: "ko",
		Translator: mapTranslator{
			"form.title":              "직원 등록 폼",
			"fields.role.label":       "직무",
			"fields.role.placeholder": "직무를 선택하세요",
			"roles.developer":         "개발자",
		},
	})

	if got := form.UIHints[render.HintTitle]; got != "직원 등록 폼" {
		t.Fatalf("title = %q", got)
	}
	if got := form.UIHints[model.HintSubmitLabel]; got != "form.submit" {
		t.Fatalf("missing submit translation should fall back to key, got %q", got)
	}
	role := form.Fields[0]
	if role.Label != "직무" || role.Placeholder != "직무를 선택하세요" {
		t.Fatalf("role not localised: %+v", role)
	}
	wantOptions := []render.Option{
		{Value: "developer", Label: "개발자"},
		{Value: "planner", Label: "planner"},
	}
	if diff := cmp.Diff(wantOptions, render.FieldOptions(role)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got := form.Fields[1].UIHints[model.HintHelpText]; got != "fields.bio.help" {
		t.Fatalf("help text = %q", got)
	}

	if _, ok := original.UIHints[render.HintTitle]; ok {
		t.Fatalf("LocalizeFormModel mutated the source form hints")
	}
	if original.Fields[0].Label != "Role" {
		t.Fatalf("LocalizeFormModel mutated the source fields")
	}
}

func TestRenderOptionsT(t *testing.T) {
	var missing []string
	opts := render.RenderOptions{
		OnMissing: func(_ string, key, fallback string, err error) string {
			missing = append(missing, key)
			if !errors.Is(err, render.ErrMissingTranslator) {
				t.Fatalf("unexpected error %v", err)
			}
			return "!" + fallback
		},
	}
	if got := opts.T("a.b", "fallback"); got != "!fallback" {
		t.Fatalf("T = %q", got)
	}
	if got := opts.T("", "plain"); got != "plain" {
		t.Fatalf("empty key should return fallback, got %q", got)
	}
	if diff := cmp.Diff([]string{"a.b"}, missing); diff != "" {
		t.Fatalf("missing keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	opts := render.RenderOptions{HiddenFields: map[string]string{"lang": "ko", "_csrf": "x", " ": "skip"}}
	want := []render.HiddenField{{Name: "_csrf", Value: "x"}, {Name: "lang", Value: "ko"}}
	if diff := cmp.Diff(want, opts.SortedHiddenFields()); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if got := render.Hidden(" lang ", 3); got != (render.HiddenField{Name: "lang", Value: "3"}) {
		t.Fatalf("Hidden = %+v", got)
	}
}

func TestMapValidationError(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{Name: "name"}, {Name: "role"}}}
	err := &registration.ValidationError{Errors: []registration.FieldError{
		{Field: "name", Rule: "required", Message: "Please enter your name"},
		{Field: "github", Rule: "required", Message: "Please enter your GitHub URL"},
		{Field: "github", Rule: "pattern", Message: "Please enter your GitHub URL"},
	}}

	got := render.MapValidationError(form, err)
	want := render.ErrorMapping{
		Fields: map[string][]string{"name": {"Please enter your name"}},
		Form:   []string{"Please enter your GitHub URL"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}

	plain := render.MapValidationError(form, errors.New("boom"))
	if diff := cmp.Diff([]string{"boom"}, plain.Form); diff != "" {
		t.Fatalf("plain error mismatch (-want +got):\n%s", diff)
	}
	if empty := render.MapValidationError(form, nil); empty.Fields != nil || empty.Form != nil {
		t.Fatalf("nil error should map to empty")
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
