package vanilla

// ChromeClass is a typed identifier for the structural CSS classes styled by
// the theme stylesheet.
type ChromeClass string

const (
	ClassContainer     ChromeClass = "rf-container"
	ClassNav           ChromeClass = "rf-nav"
	ClassForm          ChromeClass = "rf-form"
	ClassTitle         ChromeClass = "rf-title"
	ClassSubtitle      ChromeClass = "rf-subtitle"
	ClassItem          ChromeClass = "rf-item"
	ClassCheckboxGroup ChromeClass = "rf-checkbox-group"
	ClassCheckboxItem  ChromeClass = "rf-checkbox-item"
	ClassRoleApply     ChromeClass = "rf-role-apply"
	ClassSubmit        ChromeClass = "rf-submit"
	ClassError         ChromeClass = "rf-error"
	ClassHelp          ChromeClass = "rf-help"
	ClassResult        ChromeClass = "rf-result"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"Container":     string(ClassContainer),
		"Nav":           string(ClassNav),
		"Form":          string(ClassForm),
		"Title":         string(ClassTitle),
		"Subtitle":      string(ClassSubtitle),
		"Item":          string(ClassItem),
		"CheckboxGroup": string(ClassCheckboxGroup),
		"CheckboxItem":  string(ClassCheckboxItem),
		"RoleApply":     string(ClassRoleApply),
		"Submit":        string(ClassSubmit),
		"Error":         string(ClassError),
		"Help":          string(ClassHelp),
		"Result":        string(ClassResult),
	}
}
