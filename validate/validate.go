// Package validate schema-checks inbound mutation payloads before they reach
// authorization or storage. Failures are always field-attributed so callers
// can render per-field errors.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError attributes a validation failure to a single payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured failure returned by every validator in this
// package. It is never a single opaque message.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validate: " + strings.Join(parts, "; ")
}

// Fields returns the set of field names carrying errors.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, fe := range e {
		fields = append(fields, fe.Field)
	}
	return fields
}

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := vd.RegisterValidation("identifier", wellFormedIdentifier); err != nil {
		panic(err)
	}
	vd.RegisterStructValidation(leadStructLevel, LeadInput{})
	vd.RegisterStructValidation(developmentStructLevel, DevelopmentInput{})
	vd.RegisterStructValidation(developmentPatchStructLevel, DevelopmentPatch{})
	return vd
}

// translate converts validator errors into field-attributed messages using
// the struct's json tag names.
func translate(err error) Errors {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a well-formed URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "contact":
		return "at least one of phone or email is required"
	case "identifier":
		return "must be a well-formed identifier"
	case "coordinates":
		return "latitude and longitude must be provided together"
	default:
		return "is invalid"
	}
}
