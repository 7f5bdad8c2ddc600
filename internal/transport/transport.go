package transport

import (
	"github.com/TGartman/SSC/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(postHandler *PostHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		api.POST("/compose", postHandler.ComposePost)
		api.POST("/batch", postHandler.BatchCompose)
		api.GET("/images", postHandler.ListImages)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "social-post-composer",
		})
	})
	return router
}
