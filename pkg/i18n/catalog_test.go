package i18n_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roleform/pkg/i18n"
	"github.com/goliatone/go-roleform/pkg/registration"
)

func TestDefaultCatalogLocales(t *testing.T) {
	catalog := i18n.MustDefault()
	if diff := cmp.Diff([]string{"en", "ko"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateResolvesRegionAndFallback(t *testing.T) {
	catalog := i18n.MustDefault()

	cases := []struct {
		locale, key, want string
	}{
		{"ko", "fields.name.label", "이름"},
		{"ko-KR", "form.submit", "등록하기"},
		{"en", "form.submit", "Register"},
		{"fr", "form.submit", "Register"},
		{"", "roles.planner", "Planner"},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("Translate(%q, %q): %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("Translate(%q, %q) = %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}
}

func TestTranslateFormatsArgsAndReportsMissing(t *testing.T) {
	catalog := i18n.New("en")
	if err := catalog.Add("en", []byte("greeting: \"Hello %s\"\nnested:\n  count: 3\n")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := catalog.T("en", "greeting", "Kim"); got != "Hello Kim" {
		t.Fatalf("T = %q", got)
	}
	if got := catalog.T("en", "nested.count"); got != "3" {
		t.Fatalf("nested key = %q", got)
	}
	if _, err := catalog.Translate("en", "absent"); !errors.Is(err, i18n.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	if got := catalog.T("en", "absent"); got != "absent" {
		t.Fatalf("T should echo missing key, got %q", got)
	}
}

func TestAddRejectsInvalidYAML(t *testing.T) {
	if err := i18n.New("en").Add("en", []byte("a: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMessagesFeedValidation(t *testing.T) {
	catalog := i18n.MustDefault()
	err := registration.Validate(registration.NewSubmission("", registration.Unselected{}), registration.WithMessages(catalog.Messages("ko")))

	var verr *registration.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string][]string{
		"name": {"이름을 입력해주세요"},
		"role": {"직무를 선택해주세요"},
	}
	if diff := cmp.Diff(want, verr.Fields()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEveryValidationRuleHasMessages(t *testing.T) {
	catalog := i18n.MustDefault()
	pairs := map[string][]string{
		registration.FieldName:           {registration.RuleRequired},
		registration.FieldRole:           {registration.RuleRequired, registration.RuleOneOf},
		registration.FieldTechStack:      {registration.RuleRequired},
		registration.FieldGitHub:         {registration.RuleRequired, registration.RulePattern},
		registration.FieldDesignTools:    {registration.RuleRequired},
		registration.FieldPortfolio:      {registration.RuleRequired, registration.RulePattern},
		registration.FieldExperienceYear: {registration.RuleRequired, registration.RuleMin, registration.RuleNumber},
		registration.FieldProjectSummary: {registration.RuleRequired},
	}
	for _, locale := range catalog.Locales() {
		for field, rules := range pairs {
			for _, rule := range rules {
				if _, err := catalog.Translate(locale, "validation."+field+"."+rule); err != nil {
					t.Fatalf("%s: %v", locale, err)
				}
			}
		}
	}
}

func TestRoleOptionsLocalised(t *testing.T) {
	got := i18n.MustDefault().RoleOptions("ko")
	want := []registration.RoleOption{
		{Label: "개발자", Value: registration.RoleDeveloper},
		{Label: "디자이너", Value: registration.RoleDesigner},
		{Label: "기획자", Value: registration.RolePlanner},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("role options mismatch (-want +got):\n%s", diff)
	}
}
