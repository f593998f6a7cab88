// Package validation holds the field rules for inbound request bodies and
// adapts go-playground/validator to echo's Validator interface.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ContactInput is the candidate contact form submission. Nil fields were
// absent from the request body.
type ContactInput struct {
	Name    *string `json:"name" validate:"required,min=1,max=100"`
	Email   *string `json:"email" validate:"required,email,dotted_domain"`
	Message *string `json:"message" validate:"required,min=10,max=1000"`
}

// StatusInput is the body of a status check creation.
type StatusInput struct {
	ClientName *string `json:"client_name" validate:"required"`
}

// Violation names one failed rule on one field.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Violations is the rejection half of a validation result. An empty value
// means the input was accepted.
type Violations []Violation

// OK reports whether no rule failed.
func (v Violations) OK() bool { return len(v) == 0 }

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, x.Field+": "+x.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom rules registered. Field names in
// violations follow the json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("dotted_domain", dottedDomain); err != nil {
		panic("register dotted_domain: " + err.Error())
	}
	return &Validator{v: v}
}

// Validate checks i against its struct tags. A failure is returned as
// Violations.
func (val *Validator) Validate(i any) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Violations, 0, len(ve))
	for _, fe := range ve {
		out = append(out, Violation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// AsViolations extracts Violations from an error returned by Validate.
// Errors of any other kind become a single violation on field "body".
func AsViolations(err error) Violations {
	if err == nil {
		return nil
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}
	return Violations{{Field: "body", Rule: "invalid"}}
}

// dottedDomain requires the part after the last "@" to contain at least one
// "." with no empty labels.
func dottedDomain(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	labels := strings.Split(s[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}
