package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/identity"
	"propflow/policy"
)

// listAgents handles GET /agents, the admin view of the agent directory.
func (s *server) listAgents(c *gin.Context) {
	sess := session(c)
	if sess.Identity.Anonymous() {
		writeError(c, policy.ErrUnauthenticated)
		return
	}
	if sess.Role != identity.RoleAdmin {
		writeError(c, policy.Deny("agent directory is admin only"))
		return
	}

	agents, err := s.agents.List(c.Request.Context(), intQuery(c, "limit", 100))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// siteContact handles GET /site/contact: the fallback contact details the
// frontend renders when a listing has no linked agent.
func (s *server) siteContact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email": s.cfg.DefaultContactEmail,
		"phone": s.cfg.DefaultContactPhone,
	})
}
