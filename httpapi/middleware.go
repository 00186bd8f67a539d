package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"propflow/identity"
)

const sessionKey = "propflow_session"

// withSession resolves the caller's session from the Authorization header.
// A missing or invalid token yields the anonymous session, never an error;
// a role-lookup infrastructure failure aborts with 500.
func withSession(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		sess, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// session returns the resolved session for the request.
func session(c *gin.Context) identity.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return identity.AnonymousSession()
	}
	sess, ok := v.(identity.Session)
	if !ok {
		return identity.AnonymousSession()
	}
	return sess
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
