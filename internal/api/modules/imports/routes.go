package imports

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the import module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/import")

	group.POST("/preview", postPreview) // Raw headers and samples
	group.POST("/run", postRun)         // Map and write
}
