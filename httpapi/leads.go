package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"propflow/lead"
	"propflow/validate"
)

type leadResponse struct {
	ID         string  `json:"id"`
	PropertyID *string `json:"property_id,omitempty"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
}

func toLeadResponse(l lead.Lead) leadResponse {
	return leadResponse{
		ID:         l.ID,
		PropertyID: l.PropertyID,
		Name:       l.Name,
		Phone:      l.Phone,
		Email:      l.Email,
		Message:    l.Message,
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// createLead handles POST /leads, the public contact funnel.
func (s *server) createLead(c *gin.Context) {
	var body validate.LeadInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	in, err := validate.Lead(body)
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := s.leads.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": toLeadResponse(created)})
}

// listLeads handles GET /leads for admin and agent callers.
func (s *server) listLeads(c *gin.Context) {
	filters := lead.ListFilters{
		PropertyID: c.Query("property_id"),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", 20),
	}

	leads, total, err := s.leads.List(c.Request.Context(), session(c), filters)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": out,
		"pagination": gin.H{
			"page":      filters.Page,
			"page_size": filters.PageSize,
			"total":     total,
		},
	})
}
