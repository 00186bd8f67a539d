package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"propflow/revalidate"
)

// cmsWebhook handles POST /webhooks/cms. The CMS presents a shared-secret
// bearer credential, verified against the bcrypt hash held in config; on
// success the declared paths (or the site root) are announced stale.
func (s *server) cmsWebhook(c *gin.Context) {
	secret := bearerToken(c.GetHeader("Authorization"))
	if secret == "" || s.cfg.CMSWebhookSecretHash == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.CMSWebhookSecretHash), []byte(secret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
		return
	}

	var body struct {
		Paths []string `json:"paths"`
	}
	// An empty or absent body falls back to the default path set.
	_ = c.ShouldBindJSON(&body)

	paths := body.Paths
	if len(paths) == 0 {
		paths = revalidate.CMSDefaultPaths()
	}

	s.signal.Invalidate(c.Request.Context(), paths)

	c.JSON(http.StatusOK, gin.H{"revalidated_paths": paths})
}
