package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/development"
	"propflow/validate"
)

// listDevelopments handles GET /developments, the public listing.
func (s *server) listDevelopments(c *gin.Context) {
	filters := development.ListFilters{
		Status:   development.Status(c.Query("status")),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}

	developments, total, err := s.developments.List(c.Request.Context(), filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"developments": developments,
		"pagination": gin.H{
			"page":      filters.Page,
			"page_size": filters.PageSize,
			"total":     total,
		},
	})
}

// getDevelopment handles GET /developments/:id.
func (s *server) getDevelopment(c *gin.Context) {
	d, err := s.developments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"development": d})
}

// createDevelopment handles POST /developments.
func (s *server) createDevelopment(c *gin.Context) {
	var body validate.DevelopmentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	in, err := validate.Development(body)
	if err != nil {
		writeError(c, err)
		return
	}

	d, err := s.developments.Create(c.Request.Context(), session(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"development": d})
}

// updateDevelopment handles PUT /developments/:id with a partial payload.
func (s *server) updateDevelopment(c *gin.Context) {
	var body validate.DevelopmentPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	patch, err := validate.DevelopmentUpdate(body)
	if err != nil {
		writeError(c, err)
		return
	}

	d, err := s.developments.Update(c.Request.Context(), session(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"development": d})
}

// updateDevelopmentProgress handles PUT /developments/:id/progress.
func (s *server) updateDevelopmentProgress(c *gin.Context) {
	var body struct {
		Progress *int `json:"progress"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}
	if body.Progress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
			{Field: "progress", Message: "is required"},
		}})
		return
	}

	d, err := s.developments.UpdateProgress(c.Request.Context(), session(c), c.Param("id"), *body.Progress)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"development": d})
}

// deleteDevelopment handles DELETE /developments/:id.
func (s *server) deleteDevelopment(c *gin.Context) {
	if err := s.developments.Delete(c.Request.Context(), session(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
