package registration

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rule identifiers reported in FieldError.Rule.
const (
	RuleRequired = "required"
	RuleOneOf    = "oneof"
	RulePattern  = "pattern"
	RuleMin      = "min"
	RuleNumber   = "number"
)

const (
	GitHubPattern    = `^https://github\.com/[A-Za-z0-9_-]+$`
	PortfolioPattern = `^(https?://)?(www\.)?[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`
)

var (
	githubExpr    = regexp.MustCompile(GitHubPattern)
	portfolioExpr = regexp.MustCompile(PortfolioPattern)
)

// FieldError is a single user-correctable problem scoped to one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError collects the field errors of one submit attempt.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "registration: validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Rule)
	}
	return "registration: validation failed: " + strings.Join(parts, "; ")
}

// Fields groups messages by field name, the shape renderers expect.
func (e *ValidationError) Fields() map[string][]string {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Has reports whether the error carries rule for field.
func (e *ValidationError) Has(field, rule string) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Rule == rule {
			return true
		}
	}
	return false
}

// Option customises a single validation run.
type Option func(*options)

type options struct {
	messages Messages
}

// WithMessages resolves error messages through m before falling back to
// DefaultMessages.
func WithMessages(m Messages) Option {
	return func(o *options) {
		if m != nil {
			o.messages = m
		}
	}
}

// Validator checks submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the registration rules registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return field.Name
	})
	mustRegister(v, "github_url", githubExpr)
	mustRegister(v, "portfolio_url", portfolioExpr)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, expr *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return expr.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("registration: register %s: %v", tag, err))
	}
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *Validator
)

func sharedValidator() *Validator {
	defaultValidatorOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// Validate checks sub with the shared validator.
func Validate(sub Submission, opts ...Option) error {
	return sharedValidator().Validate(sub, opts...)
}

// Parse converts raw form data and validates it with the shared validator.
func Parse(data FormData, opts ...Option) (Submission, error) {
	return sharedValidator().Parse(data, opts...)
}

// Parse converts raw form data into a submission and validates it. The
// returned error is a *ValidationError when any active field is invalid.
func (v *Validator) Parse(data FormData, opts ...Option) (Submission, error) {
	sub, problems := data.Submission()
	return sub, v.check(sub, problems, opts)
}

// Validate checks the base fields and the active profile variant only.
func (v *Validator) Validate(sub Submission, opts ...Option) error {
	return v.check(sub, nil, opts)
}

func (v *Validator) check(sub Submission, problems []FieldError, opts []Option) error {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	found := append([]FieldError(nil), problems...)

	collected, err := v.collect(baseFields{Name: sub.Name, Role: sub.ActiveRole()})
	if err != nil {
		return err
	}
	found = append(found, collected...)

	if sub.Profile != nil && sub.Profile.Role().Valid() {
		collected, err = v.collect(sub.Profile)
		if err != nil {
			return err
		}
		found = append(found, skipReported(collected, problems)...)
	}

	if len(found) == 0 {
		return nil
	}
	sortFieldErrors(found)
	for i := range found {
		found[i].Message = resolveMessage(cfg.messages, found[i].Field, found[i].Rule)
	}
	return &ValidationError{Errors: found}
}

func (v *Validator) collect(target any) ([]FieldError, error) {
	err := v.validate.Struct(target)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("registration: validate: %w", err)
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: ruleFor(fe)})
	}
	return out, nil
}

func ruleFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return RuleRequired
	case "oneof":
		return RuleOneOf
	case "github_url", "portfolio_url":
		return RulePattern
	case "min":
		// An empty checkbox group reads as "nothing selected".
		if fe.Kind() == reflect.Slice {
			return RuleRequired
		}
		return RuleMin
	default:
		return fe.Tag()
	}
}

// skipReported drops errors for fields that already failed conversion.
func skipReported(found, reported []FieldError) []FieldError {
	if len(reported) == 0 {
		return found
	}
	out := found[:0]
	for _, fe := range found {
		dup := false
		for _, prior := range reported {
			if prior.Field == fe.Field {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, fe)
		}
	}
	return out
}

func sortFieldErrors(errs []FieldError) {
	rank := make(map[string]int, len(FieldOrder))
	for i, name := range FieldOrder {
		rank[name] = i
	}
	// Insertion sort keeps equal-rank errors stable.
	for i := 1; i < len(errs); i++ {
		for j := i; j > 0 && rank[errs[j].Field] < rank[errs[j-1].Field]; j-- {
			errs[j], errs[j-1] = errs[j-1], errs[j]
		}
	}
}
