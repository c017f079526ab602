package registration

import (
	"net/url"
	"strconv"
	"strings"
)

// FormData is the raw page state: every input as the browser (or terminal)
// submitted it. Values for groups other than the selected role may be present
// but never reach the Submission.
type FormData struct {
	Name           string
	Role           string
	TechStack      []string
	DesignTools    []string
	GitHub         string
	Portfolio      string
	ExperienceYear string
	ProjectSummary string
}

// Decode reads FormData from url-encoded values.
func Decode(values url.Values) FormData {
	return FormData{
		Name:           values.Get(FieldName),
		Role:           strings.TrimSpace(values.Get(FieldRole)),
		TechStack:      nonEmpty(values[FieldTechStack]),
		DesignTools:    nonEmpty(values[FieldDesignTools]),
		GitHub:         values.Get(FieldGitHub),
		Portfolio:      values.Get(FieldPortfolio),
		ExperienceYear: values.Get(FieldExperienceYear),
		ProjectSummary: values.Get(FieldProjectSummary),
	}
}

// Values returns the render value map used to prefill controls. Empty
// optional inputs are left out.
func (d FormData) Values() map[string]any {
	out := map[string]any{
		FieldName: d.Name,
		FieldRole: d.Role,
	}
	if len(d.TechStack) > 0 {
		out[FieldTechStack] = toAny(d.TechStack)
	}
	if len(d.DesignTools) > 0 {
		out[FieldDesignTools] = toAny(d.DesignTools)
	}
	setIfPresent(out, FieldGitHub, d.GitHub)
	setIfPresent(out, FieldPortfolio, d.Portfolio)
	setIfPresent(out, FieldExperienceYear, d.ExperienceYear)
	setIfPresent(out, FieldProjectSummary, d.ProjectSummary)
	return out
}

// WithRole returns a copy with the role replaced. Base fields are kept.
func (d FormData) WithRole(role string) FormData {
	d.Role = strings.TrimSpace(role)
	return d
}

// Submission projects the form data onto the tagged union. Inputs that cannot
// be converted (a non-numeric experience year) are returned as field errors
// alongside the partially filled submission.
func (d FormData) Submission() (Submission, []FieldError) {
	role, _ := ParseRole(d.Role)
	sub := Submission{Name: d.Name, Role: role}

	var problems []FieldError
	switch role {
	case RoleDeveloper:
		sub.Profile = Developer{TechStack: cloneStrings(d.TechStack), GitHub: d.GitHub}
	case RoleDesigner:
		sub.Profile = Designer{DesignTools: cloneStrings(d.DesignTools), Portfolio: d.Portfolio}
	case RolePlanner:
		planner := Planner{ProjectSummary: d.ProjectSummary}
		if raw := strings.TrimSpace(d.ExperienceYear); raw != "" {
			years, err := strconv.Atoi(raw)
			if err != nil {
				problems = append(problems, FieldError{Field: FieldExperienceYear, Rule: RuleNumber})
			} else {
				planner.ExperienceYear = &years
			}
		}
		sub.Profile = planner
	default:
		sub.Profile = Unselected{}
	}
	return sub, problems
}

func nonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func setIfPresent(target map[string]any, key, value string) {
	if value != "" {
		target[key] = value
	}
}
