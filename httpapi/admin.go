package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/identity"
	"propflow/policy"
)

// adminSetup handles POST /admin/setup: the one-time first-admin claim.
func (s *server) adminSetup(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	sess := session(c)
	if sess.Identity.Anonymous() {
		writeError(c, policy.ErrUnauthenticated)
		return
	}

	profile, err := s.profiles.ClaimAdmin(c.Request.Context(), sess, body.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": toProfileResponse(profile)})
}

// setProfileRole handles PUT /admin/profiles/:userID/role, admin only.
func (s *server) setProfileRole(c *gin.Context) {
	var body struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	sess := session(c)
	if sess.Identity.Anonymous() {
		writeError(c, policy.ErrUnauthenticated)
		return
	}

	profile, err := s.profiles.SetRole(c.Request.Context(), sess, c.Param("userID"), identity.Role(body.Role), body.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": toProfileResponse(profile)})
}

type profileResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func toProfileResponse(p identity.Profile) profileResponse {
	return profileResponse{UserID: p.UserID, Name: p.Name, Role: string(p.Role)}
}
