package registration_test

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roleform/pkg/registration"
)

func validationError(t *testing.T, err error) *registration.ValidationError {
	t.Helper()
	var verr *registration.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return verr
}

func TestValidate_NameRequiredForEveryRole(t *testing.T) {
	profiles := []registration.Profile{
		registration.Unselected{},
		registration.Developer{TechStack: []string{"Go"}, GitHub: "https://github.com/alice"},
		registration.Designer{DesignTools: []string{"Figma"}, Portfolio: "example.com"},
		registration.Planner{ExperienceYear: registration.Years(2), ProjectSummary: "Launch"},
	}
	for _, profile := range profiles {
		err := registration.Validate(registration.NewSubmission("", profile))
		verr := validationError(t, err)
		if !verr.Has(registration.FieldName, registration.RuleRequired) {
			t.Fatalf("role %q: expected name required, got %+v", profile.Role(), verr.Errors)
		}
		if got := verr.Fields()[registration.FieldName]; len(got) != 1 || got[0] != "Please enter your name" {
			t.Fatalf("role %q: unexpected name messages %v", profile.Role(), got)
		}
	}
}

func TestValidate_UnselectedRoleIsRequired(t *testing.T) {
	err := registration.Validate(registration.NewSubmission("Kim", nil))
	verr := validationError(t, err)

	want := []registration.FieldError{
		{Field: registration.FieldRole, Rule: registration.RuleRequired, Message: "Please select a role"},
	}
	if diff := cmp.Diff(want, verr.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UnknownRole(t *testing.T) {
	_, err := registration.Parse(registration.FormData{Name: "Kim", Role: "admin"})
	verr := validationError(t, err)
	if !verr.Has(registration.FieldRole, registration.RuleOneOf) {
		t.Fatalf("expected role oneof error, got %+v", verr.Errors)
	}
}

func TestValidate_DeveloperTechStack(t *testing.T) {
	for name, stack := range map[string][]string{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			sub := registration.NewSubmission("Lee", registration.Developer{TechStack: stack})
			verr := validationError(t, registration.Validate(sub))

			want := []registration.FieldError{
				{Field: registration.FieldTechStack, Rule: registration.RuleRequired, Message: "Please select at least one tech stack"},
				{Field: registration.FieldGitHub, Rule: registration.RuleRequired, Message: "Please enter your GitHub URL"},
			}
			if diff := cmp.Diff(want, verr.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}

	sub := registration.NewSubmission("Lee", registration.Developer{
		TechStack: []string{"React"},
		GitHub:    "https://github.com/alice-99",
	})
	if err := registration.Validate(sub); err != nil {
		t.Fatalf("expected valid developer, got %v", err)
	}
}

func TestValidate_GitHubPattern(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/alice-99":   true,
		"https://github.com/a_b":        true,
		"http://github.com/alice":       false,
		"https://gitlab.com/alice":      false,
		"https://github.com/alice/repo": false,
		"https://github.com/":           false,
	}
	for input, ok := range cases {
		sub := registration.NewSubmission("Lee", registration.Developer{TechStack: []string{"Go"}, GitHub: input})
		err := registration.Validate(sub)
		if ok && err != nil {
			t.Fatalf("%q: expected valid, got %v", input, err)
		}
		if !ok {
			verr := validationError(t, err)
			if !verr.Has(registration.FieldGitHub, registration.RulePattern) {
				t.Fatalf("%q: expected github pattern error, got %+v", input, verr.Errors)
			}
		}
	}
}

func TestValidate_PortfolioPattern(t *testing.T) {
	cases := map[string]bool{
		"example.com":             true,
		"www.example.com":         true,
		"https://my-site.io":      true,
		"http://www.portfolio.kr": true,
		"example":                 false,
		"ftp://example.com":       false,
		"https://example.com/me":  false,
	}
	for input, ok := range cases {
		sub := registration.NewSubmission("Park", registration.Designer{DesignTools: []string{"Figma"}, Portfolio: input})
		err := registration.Validate(sub)
		if ok && err != nil {
			t.Fatalf("%q: expected valid, got %v", input, err)
		}
		if !ok {
			verr := validationError(t, err)
			if !verr.Has(registration.FieldPortfolio, registration.RulePattern) {
				t.Fatalf("%q: expected portfolio pattern error, got %+v", input, verr.Errors)
			}
		}
	}
}

func TestValidate_PlannerExperienceYear(t *testing.T) {
	negative := registration.NewSubmission("Kim", registration.Planner{ExperienceYear: registration.Years(-1), ProjectSummary: "Built X"})
	verr := validationError(t, registration.Validate(negative))
	if !verr.Has(registration.FieldExperienceYear, registration.RuleMin) {
		t.Fatalf("expected min error, got %+v", verr.Errors)
	}

	zero := registration.NewSubmission("Kim", registration.Planner{ExperienceYear: registration.Years(0), ProjectSummary: "Built X"})
	if err := registration.Validate(zero); err != nil {
		t.Fatalf("expected zero years to pass, got %v", err)
	}

	missing := registration.NewSubmission("Kim", registration.Planner{ProjectSummary: "Built X"})
	verr = validationError(t, registration.Validate(missing))
	if !verr.Has(registration.FieldExperienceYear, registration.RuleRequired) {
		t.Fatalf("expected required error, got %+v", verr.Errors)
	}
}

func TestParse_NonNumericExperienceYear(t *testing.T) {
	_, err := registration.Parse(registration.FormData{
		Name:           "Kim",
		Role:           "planner",
		ExperienceYear: "three",
		ProjectSummary: "Built X",
	})
	verr := validationError(t, err)

	want := []registration.FieldError{
		{Field: registration.FieldExperienceYear, Rule: registration.RuleNumber, Message: "Please enter a whole number"},
	}
	if diff := cmp.Diff(want, verr.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_IgnoresInactiveGroups(t *testing.T) {
	values := url.Values{
		"name":      {"Lee"},
		"role":      {"developer"},
		"techStack": {"React", ""},
		"github":    {"https://github.com/lee"},
		"portfolio": {"not a url"},
	}
	sub, err := registration.Parse(registration.Decode(values))
	if err != nil {
		t.Fatalf("expected inactive portfolio to be ignored, got %v", err)
	}
	want := registration.Developer{TechStack: []string{"React"}, GitHub: "https://github.com/lee"}
	if diff := cmp.Diff(registration.Profile(want), sub.Profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CustomMessages(t *testing.T) {
	ko := registration.MessageMap{"name.required": "이름을 입력해주세요"}
	err := registration.Validate(registration.NewSubmission("", registration.Unselected{}), registration.WithMessages(ko))
	verr := validationError(t, err)

	want := map[string][]string{
		"name": {"이름을 입력해주세요"},
		"role": {"Please select a role"},
	}
	if diff := cmp.Diff(want, verr.Fields()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildResult_Planner(t *testing.T) {
	sub, err := registration.Parse(registration.FormData{
		Name:           "Kim",
		Role:           "planner",
		ExperienceYear: "3",
		ProjectSummary: "Built X",
		GitHub:         "https://github.com/ignored",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result := registration.BuildResult(sub)

	wantMap := map[string]any{
		"name":           "Kim",
		"role":           "planner",
		"experienceYear": 3,
		"projectSummary": "Built X",
	}
	if diff := cmp.Diff(wantMap, result.Map()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Kim","role":"planner","experienceYear":3,"projectSummary":"Built X"}`
	if string(raw) != want {
		t.Fatalf("json = %s, want %s", raw, want)
	}
}

func TestBuildResult_DeveloperAndDesignerKeys(t *testing.T) {
	dev := registration.BuildResult(registration.NewSubmission("Lee", registration.Developer{TechStack: []string{"Go"}, GitHub: "https://github.com/lee"}))
	if diff := cmp.Diff([]string{"name", "role", "techStack", "github"}, dev.Keys()); diff != "" {
		t.Fatalf("developer keys mismatch (-want +got):\n%s", diff)
	}

	designer := registration.BuildResult(registration.NewSubmission("Park", registration.Designer{DesignTools: []string{"Figma"}, Portfolio: "park.design"}))
	if diff := cmp.Diff([]string{"name", "role", "designTools", "portfolio"}, designer.Keys()); diff != "" {
		t.Fatalf("designer keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFormDataWithRoleKeepsBaseFields(t *testing.T) {
	data := registration.FormData{Name: "Kim", Role: "developer", GitHub: "https://github.com/kim"}
	next := data.WithRole("planner")

	want := map[string]any{"name": "Kim", "role": "planner", "github": "https://github.com/kim"}
	if diff := cmp.Diff(want, next.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildResult_RoleFollowsProfile(t *testing.T) {
	sub := registration.Submission{
		Name:    "Kim",
		Role:    registration.RoleDeveloper,
		Profile: registration.Planner{ExperienceYear: registration.Years(2), ProjectSummary: "Launch"},
	}
	if got := sub.ActiveRole(); got != registration.RolePlanner {
		t.Fatalf("ActiveRole = %q, want planner", got)
	}
	result := registration.BuildResult(sub)
	want := []string{"name", "role", "experienceYear", "projectSummary"}
	if diff := cmp.Diff(want, result.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if role, _ := result.Get("role"); role != "planner" {
		t.Fatalf("role = %v, want planner", role)
	}

	unselected := registration.Submission{Name: "Kim", Role: "tester", Profile: registration.Unselected{}}
	if got := unselected.ActiveRole(); got != "tester" {
		t.Fatalf("ActiveRole = %q, want the raw role", got)
	}
}

func TestDecodeTrimsRole(t *testing.T) {
	data := registration.Decode(url.Values{"name": {"Kim"}, "role": {" developer "}})
	if data.Role != "developer" {
		t.Fatalf("role = %q", data.Role)
	}
	if got := data.WithRole(" planner").Role; got != "planner" {
		t.Fatalf("WithRole = %q", got)
	}
}
