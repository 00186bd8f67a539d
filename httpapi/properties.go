package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"propflow/property"
)

// listProperties handles GET /properties, the public listing.
func (s *server) listProperties(c *gin.Context) {
	filters := property.ListFilters{
		Operation: property.Operation(c.Query("operation")),
		Type:      property.Type(c.Query("type")),
		City:      c.Query("city"),
		Page:      intQuery(c, "page", 1),
		PageSize:  intQuery(c, "page_size", 20),
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filters.Featured = &featured
	}

	properties, total, err := s.properties.List(c.Request.Context(), filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"pagination": gin.H{
			"page":      filters.Page,
			"page_size": filters.PageSize,
			"total":     total,
		},
	})
}

// getProperty handles GET /properties/:id, including images.
func (s *server) getProperty(c *gin.Context) {
	p, err := s.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": p})
}

// deleteProperty handles DELETE /properties/:id.
func (s *server) deleteProperty(c *gin.Context) {
	if err := s.properties.Delete(c.Request.Context(), session(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
