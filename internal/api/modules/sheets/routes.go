package sheets

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the sheets module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/sheets")

	group.GET("/status", getStatus)
	group.POST("/seed", postSeed)
	group.POST("/init", postInit)
}
