package registration

import "strings"

// Role identifies which optional field group a submission carries. The zero
// value is the unselected state.
type Role string

const (
	RoleUnselected Role = ""
	RoleDeveloper  Role = "developer"
	RoleDesigner   Role = "designer"
	RolePlanner    Role = "planner"
)

// RoleOption pairs a role with its display label.
type RoleOption struct {
	Label string `json:"label" yaml:"label"`
	Value Role   `json:"value" yaml:"value"`
}

var (
	// TechStackOptions lists the checkbox values offered to developers.
	TechStackOptions = []string{"React", "Vue", "Angular", "Node.js", "Python", "Java", "C#"}
	// DesignToolOptions lists the checkbox values offered to designers.
	DesignToolOptions = []string{"Figma", "Photoshop", "Illustrator", "Sketch", "Adobe XD"}
)

// Roles returns the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleDeveloper, RoleDesigner, RolePlanner}
}

// RoleOptions returns the fixed role list with English labels. Localised
// labels come from the i18n catalog under "roles.<value>".
func RoleOptions() []RoleOption {
	return []RoleOption{
		{Label: "Developer", Value: RoleDeveloper},
		{Label: "Designer", Value: RoleDesigner},
		{Label: "Planner", Value: RolePlanner},
	}
}

// ParseRole maps raw input onto a known role. Unknown values report false and
// return the input unchanged so validation can flag it.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.TrimSpace(raw))
	return role, role.Valid()
}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleDesigner, RolePlanner:
		return true
	default:
		return false
	}
}

// Fields returns the role-specific field names, in render order.
func (r Role) Fields() []string {
	switch r {
	case RoleDeveloper:
		return []string{FieldTechStack, FieldGitHub}
	case RoleDesigner:
		return []string{FieldDesignTools, FieldPortfolio}
	case RolePlanner:
		return []string{FieldExperienceYear, FieldProjectSummary}
	default:
		return nil
	}
}

func (r Role) String() string { return string(r) }
