package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medibook/services/rbac"
	"medibook/services/user"
	"medibook/utils"
)

const actorContextKey = "actor"

// AuthMiddleware validates the bearer token and resolves the acting user
// into an explicit rbac.Actor stored in the request context. Services never
// consult ambient authentication state.
func AuthMiddleware(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := utils.ExtractUsernameFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actor, err := users.Resolve(username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext retrieves the resolved actor set by AuthMiddleware.
func ActorFromContext(c *gin.Context) (rbac.Actor, bool) {
	val, exists := c.Get(actorContextKey)
	if !exists {
		return rbac.Actor{}, false
	}
	actor, ok := val.(rbac.Actor)
	return actor, ok
}
