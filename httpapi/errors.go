package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/agent"
	"propflow/cms"
	"propflow/development"
	"propflow/favorite"
	"propflow/identity"
	"propflow/lead"
	"propflow/policy"
	"propflow/property"
	"propflow/validate"
)

// writeError translates the error taxonomy to HTTP in one place. Validation
// and authorization failures carry detail; infrastructure failures are logged
// with context and surfaced as opaque 500s.
func writeError(c *gin.Context, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})

	case errors.Is(err, policy.ErrForbidden),
		errors.Is(err, identity.ErrRoleChangeForbidden),
		errors.Is(err, identity.ErrAdminExists):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})

	case errors.Is(err, property.ErrNotFound),
		errors.Is(err, development.ErrNotFound),
		errors.Is(err, agent.ErrNotFound),
		errors.Is(err, lead.ErrPropertyNotFound),
		errors.Is(err, favorite.ErrPropertyNotFound),
		errors.Is(err, cms.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

	case errors.Is(err, development.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
			{Field: "progress", Message: "must be between 0 and 100"},
		}})

	case errors.Is(err, identity.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
			{Field: "role", Message: "must be one of: admin, agent, user"},
		}})

	case errors.Is(err, identity.ErrInvalidUserID):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
			{Field: "user_id", Message: "must be a valid user id"},
		}})

	case errors.Is(err, identity.ErrPolicyLookupFailed):
		// Infrastructure failure during role resolution. Never downgraded to
		// 401: the caller's privileges are unknown, not absent.
		log.Printf("httpapi: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

	default:
		log.Printf("httpapi: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// writeBindError renders a malformed request body as a field-less validation
// failure.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{
		{Field: "", Message: "malformed request body"},
	}})
}
