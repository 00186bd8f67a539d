package lead

import "time"

// Lead is an inbound contact/inquiry record from the public funnel. Rows are
// append-only: nothing in this system updates or deletes them.
type Lead struct {
	ID         string
	PropertyID *string
	Name       string
	Phone      string
	Email      string
	Message    string
	CreatedAt  time.Time
}

// ListFilters pages the admin/agent lead listing.
type ListFilters struct {
	PropertyID string
	Page       int
	PageSize   int
}
