package imports

import (
	"net/http"

	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// bindURLs reads the urls array of an import request, responding with 400 when it is missing
func bindURLs(c *gin.Context) ([]string, bool) {
	var req sdk.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URLs == nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "urls array required", err).AsGinResponse())
		return nil, false
	}
	return req.URLs, true
}

// postPreview handles POST requests to inspect external spreadsheets
func postPreview(c *gin.Context) {
	urls, ok := bindURLs(c)
	if !ok {
		return
	}

	resp := GetService().Preview(c.Request.Context(), urls)
	c.JSON(sdk.NewSuccessResponse("Preview generated successfully", resp).AsGinResponse())
}

// postRun handles POST requests to import external spreadsheets
func postRun(c *gin.Context) {
	urls, ok := bindURLs(c)
	if !ok {
		return
	}

	resp, err := GetService().Run(c.Request.Context(), urls)
	if err != nil {
		c.JSON(sdk.NewStoreErrorResponse("Failed to import spreadsheets", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Import completed successfully", resp).AsGinResponse())
}
