package reminders

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the reminders module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/reminders")

	group.GET("", getReminders)       // Prioritized worklist
	group.GET("/summary", getSummary) // Counts by priority and type
	group.POST("/digest", postDigest) // Send the digest now
}
