package records

import (
	"net/http"

	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// listRecords handles GET requests for every row of a tab
func listRecords(tab string) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := GetService().List(c.Request.Context(), tab)
		if err != nil {
			c.JSON(sdk.NewStoreErrorResponse("Failed to read "+tab, err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewSuccessResponse(tab+" retrieved successfully", recs).AsGinResponse())
	}
}

// createRecord handles POST requests that add a row
func createRecord(tab string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
			return
		}

		rec, err := GetService().Create(c.Request.Context(), tab, body)
		if err != nil {
			c.JSON(sdk.NewStoreErrorResponse("Failed to create record", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewSuccessResponse("Record created successfully", rec).AsGinResponse())
	}
}

// updateRecord handles PUT requests that merge into an existing row
func updateRecord(tab string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
			return
		}

		rec, err := GetService().Update(c.Request.Context(), tab, c.Param("id"), body)
		if err != nil {
			c.JSON(sdk.NewStoreErrorResponse("Failed to update record", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewSuccessResponse("Record updated successfully", rec).AsGinResponse())
	}
}

// deleteRecord handles DELETE requests for a row
func deleteRecord(tab string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GetService().Delete(c.Request.Context(), tab, c.Param("id")); err != nil {
			c.JSON(sdk.NewStoreErrorResponse("Failed to delete record", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewSuccessResponse("Record deleted successfully", sdk.SuccessResult{Success: true}).AsGinResponse())
	}
}
