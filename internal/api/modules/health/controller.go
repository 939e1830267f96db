package health

import (
	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// getStatus reports that the server is up
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("Server is healthy", sdk.HealthStatus{Status: "ok"}).AsGinResponse())
}
