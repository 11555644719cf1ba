// Package validate checks form fields for presence and shape.
//
// The phone rule only checks the rough shape of a number and the email rule
// is the one browsers apply to <input type="email">.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tidepool-org/landing/models"
)

const (
	tagRequired = "required"
	tagPhone    = "phone"
	tagEmail    = "html_email"
)

var (
	phonePattern = regexp.MustCompile(`^\+?(\d[\s-]?){9,}$`)

	// WHATWG "valid e-mail address".
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

	engine = newEngine()
)

// Result is the outcome of validating a form.
type Result struct {
	OK           bool
	FirstFailure *models.ValidationError
}

// Err returns the first failure as an error, or nil.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return r.FirstFailure
}

func newEngine() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(tagPhone, func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Fields validates fields in order and stops at the first failure.
func Fields(fields []models.FormField) Result {
	for _, field := range fields {
		if err := Field(field); err != nil {
			return Result{FirstFailure: err}
		}
	}
	return Result{OK: true}
}

// Field validates a single field.
func Field(field models.FormField) *models.ValidationError {
	if field.Required {
		if err := engine.Var(strings.TrimSpace(field.Value), tagRequired); err != nil {
			return models.NewMissingFieldError(field.Name)
		}
	}
	tag := formatTag(field.Format)
	if tag == "" || field.Value == "" {
		return nil
	}
	if err := engine.Var(field.Value, tag); err != nil {
		return models.NewBadFormatError(field.Name)
	}
	return nil
}

func formatTag(rule models.FormatRule) string {
	switch rule {
	case models.FormatEmail:
		return tagEmail
	case models.FormatPhone:
		return tagPhone
	default:
		return ""
	}
}

// IsPhone reports whether value looks like a phone number: an optional
// leading '+', then at least nine digits, each optionally followed by a
// single space or hyphen.
func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}
