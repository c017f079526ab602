package model_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roleform/pkg/model"
)

func TestRegistrationFieldOrder(t *testing.T) {
	form, err := model.Registration(context.Background())
	if err != nil {
		t.Fatalf("Registration: %v", err)
	}

	want := []string{"name", "role", "techStack", "github", "designTools", "portfolio", "experienceYear", "projectSummary"}
	if diff := cmp.Diff(want, form.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if form.Method != "POST" || form.Endpoint != "/form" {
		t.Fatalf("unexpected endpoint %s %s", form.Method, form.Endpoint)
	}
	if got := form.UIHints[model.HintTitleKey]; got != "form.title" {
		t.Fatalf("expected titleKey hint, got %q", got)
	}
}

func TestRegistrationFieldHints(t *testing.T) {
	form, err := model.Registration(context.Background())
	if err != nil {
		t.Fatalf("Registration: %v", err)
	}

	role, _ := form.Field("role")
	if diff := cmp.Diff([]any{"developer", "designer", "planner"}, role.Enum); diff != "" {
		t.Fatalf("role enum mismatch (-want +got):\n%s", diff)
	}
	if !role.Required || role.Widget() != model.WidgetSelect {
		t.Fatalf("unexpected role field %+v", role)
	}

	techStack, _ := form.Field("techStack")
	if techStack.Widget() != model.WidgetCheckboxGroup {
		t.Fatalf("expected checkbox group, got %q", techStack.Widget())
	}
	if got := techStack.UIHints[model.HintVisibilityRule]; got != `role == "developer"` {
		t.Fatalf("unexpected visibility rule %q", got)
	}
	if diff := cmp.Diff([]any{"React", "Vue", "Angular", "Node.js", "Python", "Java", "C#"}, techStack.Options()); diff != "" {
		t.Fatalf("tech stack options mismatch (-want +got):\n%s", diff)
	}

	github, _ := form.Field("github")
	rule, ok := github.Rule(model.ValidationRulePattern)
	if !ok || rule.Params["pattern"] != `^https://github\.com/[A-Za-z0-9_-]+$` {
		t.Fatalf("unexpected github pattern %+v", rule)
	}

	years, _ := form.Field("experienceYear")
	min, ok := years.Rule(model.ValidationRuleMin)
	if !ok || min.Params["value"] != "0" {
		t.Fatalf("unexpected experienceYear min %+v", min)
	}
	if years.Type != model.FieldTypeInteger || !years.Required {
		t.Fatalf("unexpected experienceYear field %+v", years)
	}
}

func TestRegistrationReturnsIndependentCopies(t *testing.T) {
	first, err := model.Registration(context.Background())
	if err != nil {
		t.Fatalf("Registration: %v", err)
	}
	first.Fields = first.Fields[:1]

	second, err := model.Registration(context.Background())
	if err != nil {
		t.Fatalf("Registration: %v", err)
	}
	if len(second.Fields) != 8 {
		t.Fatalf("cached model was mutated: %d fields", len(second.Fields))
	}
}

func TestLoadUnknownOperation(t *testing.T) {
	_, err := model.Load(context.Background(), model.RegistrationDocument(), "missing")
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}
