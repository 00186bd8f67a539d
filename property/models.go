package property

import "time"

// Operation is the commercial operation a listing is offered under.
type Operation string

const (
	OperationVenta    Operation = "venta"
	OperationAlquiler Operation = "alquiler"
	OperationTemporal Operation = "temporal"
)

// Type is the property class.
type Type string

const (
	TypeCasa         Type = "casa"
	TypeDepartamento Type = "departamento"
	TypePH           Type = "ph"
	TypeLote         Type = "lote"
	TypeLocal        Type = "local"
)

// Property is a real-estate listing. Prices are carried in both currencies;
// either may be absent.
type Property struct {
	ID            string
	Title         string
	Description   string
	Operation     Operation
	Type          Type
	PriceUSD      *float64
	PriceARS      *float64
	Address       string
	City          string
	Province      string
	Rooms         int
	Bathrooms     int
	AreaM2        *float64
	CoveredAreaM2 *float64
	Featured      bool
	Lat           *float64
	Lng           *float64
	AgentID       *string
	Images        []Image
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Image belongs to a property. Managed by upload tooling elsewhere; this core
// only reads it.
type Image struct {
	ID         string
	PropertyID string
	URL        string
	Alt        string
	Ordering   int
}

// ListFilters narrows the public listing query.
type ListFilters struct {
	Operation Operation
	Type      Type
	Featured  *bool
	City      string
	Page      int
	PageSize  int
}
