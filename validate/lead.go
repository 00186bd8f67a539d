package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LeadInput is the public contact-funnel payload. property_id is only checked
// for well-formedness here; existence is the mutation's responsibility.
type LeadInput struct {
	PropertyID *string `json:"property_id" validate:"omitempty,identifier"`
	Name       string  `json:"name" validate:"required,min=2"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Message    string  `json:"message" validate:"required,min=10"`
}

// Lead validates and normalizes a lead payload.
func Lead(in LeadInput) (LeadInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := v.Struct(in); err != nil {
		return LeadInput{}, translate(err)
	}
	return in, nil
}

func leadStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(LeadInput)
	if strings.TrimSpace(in.Phone) == "" && strings.TrimSpace(in.Email) == "" {
		sl.ReportError(in.Phone, "phone", "Phone", "contact", "")
	}
}

func wellFormedIdentifier(fl validator.FieldLevel) bool {
	return uuid.Validate(fl.Field().String()) == nil
}
