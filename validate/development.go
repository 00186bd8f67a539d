package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Development status values. Status is derived from progress server-side on
// every progress write; the enum here only bounds client-supplied values.
const (
	StatusPlanificacion = "planificacion"
	StatusConstruccion  = "construccion"
	StatusFinalizado    = "finalizado"
)

// DevelopmentInput is the create payload for a development.
type DevelopmentInput struct {
	Title        string   `json:"title" validate:"required,min=5"`
	Description  string   `json:"description"`
	Status       string   `json:"status" validate:"omitempty,oneof=planificacion construccion finalizado"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Province     string   `json:"province"`
	Amenities    []string `json:"amenities"`
	Progress     *int     `json:"progress" validate:"omitempty,gte=0,lte=100"`
	HeroImageURL string   `json:"hero_image_url" validate:"omitempty,url"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	AgentID      *string  `json:"agent_id" validate:"omitempty,identifier"`
}

// DevelopmentPatch is the partial-update payload: any subset of the create
// schema. Absent fields are left untouched, never reset to defaults.
type DevelopmentPatch struct {
	Title        *string   `json:"title" validate:"omitempty,min=5"`
	Description  *string   `json:"description"`
	Status       *string   `json:"status" validate:"omitempty,oneof=planificacion construccion finalizado"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	Province     *string   `json:"province"`
	Amenities    *[]string `json:"amenities"`
	Progress     *int      `json:"progress" validate:"omitempty,gte=0,lte=100"`
	HeroImageURL *string   `json:"hero_image_url" validate:"omitempty,url"`
	Lat          *float64  `json:"lat"`
	Lng          *float64  `json:"lng"`
	AgentID      *string   `json:"agent_id" validate:"omitempty,identifier"`
}

// Empty reports whether the patch carries no fields at all.
func (p DevelopmentPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Address == nil && p.City == nil && p.Province == nil &&
		p.Amenities == nil && p.Progress == nil && p.HeroImageURL == nil &&
		p.Lat == nil && p.Lng == nil && p.AgentID == nil
}

// Development validates a create payload and applies the schema defaults:
// status planificacion, province Catamarca, progress 0.
func Development(in DevelopmentInput) (DevelopmentInput, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := v.Struct(in); err != nil {
		return DevelopmentInput{}, translate(err)
	}

	if in.Status == "" {
		in.Status = StatusPlanificacion
	}
	if in.Province == "" {
		in.Province = "Catamarca"
	}
	if in.Progress == nil {
		zero := 0
		in.Progress = &zero
	}
	return in, nil
}

// DevelopmentUpdate validates a partial-update payload. No defaults are
// applied; absent fields stay absent. A patch naming no fields at all is
// rejected rather than silently rewriting the row.
func DevelopmentUpdate(in DevelopmentPatch) (DevelopmentPatch, error) {
	if in.Empty() {
		return DevelopmentPatch{}, Errors{
			{Field: "", Message: "at least one field must be provided"},
		}
	}

	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}

	if err := v.Struct(in); err != nil {
		return DevelopmentPatch{}, translate(err)
	}
	return in, nil
}

func developmentStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(DevelopmentInput)
	if (in.Lat == nil) != (in.Lng == nil) {
		sl.ReportError(in.Lat, "lat", "Lat", "coordinates", "")
	}
}

func developmentPatchStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(DevelopmentPatch)
	if (in.Lat == nil) != (in.Lng == nil) {
		sl.ReportError(in.Lat, "lat", "Lat", "coordinates", "")
	}
}
