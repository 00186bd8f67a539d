package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getPage handles GET /pages/*path, the read-only CMS passthrough.
func (s *server) getPage(c *gin.Context) {
	if s.pages == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	page, err := s.pages.GetPageContent(c.Request.Context(), c.Param("path"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}
