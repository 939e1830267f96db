package records

import (
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/gin-gonic/gin"
)

// resource exposes one tab under a path
type resource struct {
	path       string
	tab        string
	appendOnly bool
}

var resources = []resource{
	{path: "/influencers", tab: hub.TabInfluencers},
	{path: "/campaigns", tab: hub.TabCampaigns},
	{path: "/shipments", tab: hub.TabShipments},
	{path: "/content", tab: hub.TabContent},
	{path: "/contracts", tab: hub.TabContracts},
	{path: "/activity", tab: hub.TabActivityLog, appendOnly: true},
}

// RegisterRoutes registers the routes for the records module
func RegisterRoutes(g *gin.RouterGroup) {
	for _, r := range resources {
		group := g.Group(r.path)

		group.GET("", listRecords(r.tab))   // List every row
		group.POST("", createRecord(r.tab)) // Create a row

		// The activity log only grows
		if r.appendOnly {
			continue
		}
		group.PUT("/:id", updateRecord(r.tab))    // Merge into a row
		group.DELETE("/:id", deleteRecord(r.tab)) // Delete a row
	}
}
