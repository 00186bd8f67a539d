package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/validate"
)

// toggleFavorite handles POST /favorites/toggle. The pair is always scoped to
// the caller's own identity; no user id is accepted from the client.
func (s *server) toggleFavorite(c *gin.Context) {
	var body struct {
		PropertyID string `json:"property_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}
	if body.PropertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
			{Field: "property_id", Message: "is required"},
		}})
		return
	}

	result, err := s.favorites.Toggle(c.Request.Context(), session(c), body.PropertyID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": result})
}

// listFavorites handles GET /favorites for the signed-in caller.
func (s *server) listFavorites(c *gin.Context) {
	favorites, err := s.favorites.List(c.Request.Context(), session(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
