package development

import "time"

// Status of a multi-unit project. Always derived from progress server-side:
// 0 is planificacion, 100 is finalizado, anything between is construccion.
type Status string

const (
	StatusPlanificacion Status = "planificacion"
	StatusConstruccion  Status = "construccion"
	StatusFinalizado    Status = "finalizado"
)

// StatusForProgress derives the status for a progress value in [0,100].
func StatusForProgress(progress int) Status {
	switch {
	case progress == 0:
		return StatusPlanificacion
	case progress == 100:
		return StatusFinalizado
	default:
		return StatusConstruccion
	}
}

// Development is a multi-unit real-estate project.
type Development struct {
	ID           string
	Title        string
	Description  string
	Status       Status
	Address      string
	City         string
	Province     string
	Amenities    []string
	Progress     int
	HeroImageURL string
	Lat          *float64
	Lng          *float64
	AgentID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListFilters narrows the public development listing.
type ListFilters struct {
	Status   Status
	Page     int
	PageSize int
}
