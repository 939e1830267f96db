package sheets

import (
	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// getStatus handles GET requests asking whether the store holds data
func getStatus(c *gin.Context) {
	hasData, err := GetService().HasData(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to check spreadsheet", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Status retrieved successfully", sdk.SheetsStatus{HasData: hasData}).AsGinResponse())
}

// postSeed handles POST requests that replace all data with the demo dataset
func postSeed(c *gin.Context) {
	if err := GetService().Seed(c.Request.Context()); err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to seed spreadsheet", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Spreadsheet seeded successfully", sdk.SuccessResult{Success: true}).AsGinResponse())
}

// postInit handles POST requests that clear all data
func postInit(c *gin.Context) {
	if err := GetService().Reset(c.Request.Context()); err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to initialize spreadsheet", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Spreadsheet initialized successfully", sdk.SuccessResult{Success: true}).AsGinResponse())
}
