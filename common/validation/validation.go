// Package validation checks form input before anything leaves the storefront.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the loose "something@something.something" check the storefront forms use.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every field that failed validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// Has reports whether field is among the failures.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Add appends a failure.
func (e *Error) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when it holds failures and nil otherwise.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New returns a validator that reports fields by their json names and
// understands the contact_email tag.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	return &Validator{v: v}
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Struct validates s and returns an *Error listing the failed fields, or nil.
func (v *Validator) Struct(s interface{}) *Error {
	err := v.v.Struct(s)
	if err == nil {
		return &Error{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "contact_email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
