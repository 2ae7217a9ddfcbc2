package routes

import (
	"github.com/dsaidinesh/influencerflow/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all HTTP routes under /api/v1.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.CreatorHandler.RegisterRoutes(api, authMW)
		appHandlers.CampaignHandler.RegisterRoutes(api, authMW)
		appHandlers.MatchingHandler.RegisterRoutes(api, authMW)
	}
}
