package registration

// Field names shared by decoding, validation, results and the form model.
const (
	FieldName           = "name"
	FieldRole           = "role"
	FieldTechStack      = "techStack"
	FieldGitHub         = "github"
	FieldDesignTools    = "designTools"
	FieldPortfolio      = "portfolio"
	FieldExperienceYear = "experienceYear"
	FieldProjectSummary = "projectSummary"
)

// FieldOrder is the canonical order used for errors and rendering.
var FieldOrder = []string{
	FieldName,
	FieldRole,
	FieldTechStack,
	FieldGitHub,
	FieldDesignTools,
	FieldPortfolio,
	FieldExperienceYear,
	FieldProjectSummary,
}

// Profile is the role-specific part of a submission. Exactly one variant is
// active at a time: Unselected, Developer, Designer or Planner.
type Profile interface {
	Role() Role
	isProfile()
}

// Unselected is the profile before any role has been chosen (or when the
// submitted role is not recognised).
type Unselected struct{}

// Developer carries the developer field group.
type Developer struct {
	TechStack []string `form:"techStack" validate:"required,min=1"`
	GitHub    string   `form:"github" validate:"required,github_url"`
}

// Designer carries the designer field group.
type Designer struct {
	DesignTools []string `form:"designTools" validate:"required,min=1"`
	Portfolio   string   `form:"portfolio" validate:"required,portfolio_url"`
}

// Planner carries the planner field group. ExperienceYear is nil when the
// input was left empty.
type Planner struct {
	ExperienceYear *int   `form:"experienceYear" validate:"required,min=0"`
	ProjectSummary string `form:"projectSummary" validate:"required"`
}

func (Unselected) Role() Role { return RoleUnselected }
func (Developer) Role() Role  { return RoleDeveloper }
func (Designer) Role() Role   { return RoleDesigner }
func (Planner) Role() Role    { return RolePlanner }

func (Unselected) isProfile() {}
func (Developer) isProfile()  {}
func (Designer) isProfile()   {}
func (Planner) isProfile()    {}

// Submission is a decoded registration attempt. Role keeps the raw selection
// so unknown values can be reported; Profile is chosen from it.
type Submission struct {
	Name    string
	Role    Role
	Profile Profile
}

// ActiveRole is the role of a selectable Profile variant, or Role when the
// profile is unset or Unselected.
func (s Submission) ActiveRole() Role {
	if s.Profile != nil {
		if role := s.Profile.Role(); role.Valid() {
			return role
		}
	}
	return s.Role
}

// baseFields are validated for every role.
type baseFields struct {
	Name string `form:"name" validate:"required"`
	Role Role   `form:"role" validate:"required,oneof=developer designer planner"`
}

// NewSubmission pairs the base fields with a profile variant.
func NewSubmission(name string, profile Profile) Submission {
	if profile == nil {
		profile = Unselected{}
	}
	return Submission{Name: name, Role: profile.Role(), Profile: profile}
}

// Years is a convenience for building planner profiles.
func Years(n int) *int { return &n }
