package handlers

import (
	"net/http"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthRequired rejects requests without a valid bearer token and stores the
// resolved actor on the context for handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ClaimsFromRequest(c)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			c.Abort()
			return
		}
		if claims == nil || claims.Email == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		c.Set(actorKey, access.Actor{
			Email:      claims.Email,
			Name:       claims.Name,
			Privileged: claims.Role == "admin",
		})
		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(c *gin.Context) access.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(access.Actor); ok {
			return actor
		}
	}
	return access.Actor{}
}
