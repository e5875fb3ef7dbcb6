package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/middleware"
	"github.com/warrior-support/wss-api/internal/models"
)

func actorFromContext(c *gin.Context) *models.AuthContext {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*models.AuthContext)
	if !ok {
		return nil
	}
	return actor
}
