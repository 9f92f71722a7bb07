package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

const actorContextKey = "actor"

// authRequired verifies the Bearer token and stores the decoded actor in the
// request context. The actor travels from here into every service call as an
// explicit argument; handlers never re-read it from ambient state.
func (s *RESTServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "missing token"})
			return
		}

		actor, err := auth.ActorFromToken(token, s.jwtSecret)
		if err != nil {
			handleError(c, err)
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// actorFrom extracts the actor stored by authRequired.
func actorFrom(c *gin.Context) models.Actor {
	actor, _ := c.MustGet(actorContextKey).(models.Actor)
	return actor
}
