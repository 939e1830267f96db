package reminders

import (
	"errors"
	"net/http"

	"github.com/ethanbaker/influencer-hub/internal/digest"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// getReminders handles GET requests for the reminder worklist, optionally limited by ?priority=
func getReminders(c *gin.Context) {
	floor := reminders.PriorityLow
	if raw := c.Query("priority"); raw != "" {
		p, ok := reminders.ParsePriority(raw)
		if !ok {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid priority", "expected high, medium or low").AsGinResponse())
			return
		}
		floor = p
	}

	all, err := GetService().Reminders(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to compute reminders", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Reminders retrieved successfully", reminders.Filter(all, floor)).AsGinResponse())
}

// getSummary handles GET requests for reminder counts
func getSummary(c *gin.Context) {
	all, err := GetService().Reminders(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to compute reminders", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Reminder summary retrieved successfully", reminders.Summarize(all)).AsGinResponse())
}

// postDigest handles POST requests that send a reminder digest now
func postDigest(c *gin.Context) {
	result, err := GetService().RunDigest(c.Request.Context())
	if errors.Is(err, digest.ErrDisabled) {
		c.JSON(sdk.NewErrorResponse(http.StatusServiceUnavailable, "Reminder digest is not configured", err).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Failed to send reminder digest", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Reminder digest ran successfully", sdk.DigestResult{Sent: result.Sent, Reminders: result.Reminders}).AsGinResponse())
}
