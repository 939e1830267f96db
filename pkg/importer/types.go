// Package importer maps arbitrary external spreadsheets onto the hub's tabs using
// header and tab-name heuristics. Rows it cannot place are flagged instead of failing.
package importer

import (
	"context"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
)

// Tab is one named grid of an external spreadsheet. Rows[0] is the header row
type Tab struct {
	Name string
	Rows [][]string
}

// Source is everything read from one external spreadsheet URL
type Source struct {
	URL  string
	Tabs []Tab
	Err  error
}

// Fetcher reads every non-empty tab of an external spreadsheet
type Fetcher interface {
	FetchExternalSheet(ctx context.Context, url string) ([]Tab, error)
}

// Options control a mapping run
type Options struct {
	Now   time.Time
	NewID func() string
}

// FlaggedRow is a row or source that needs manual review
type FlaggedRow struct {
	URL    string   `json:"url,omitempty"`
	Sheet  string   `json:"sheet,omitempty"`
	Row    int      `json:"row,omitempty"`
	Reason string   `json:"reason,omitempty"`
	Data   []string `json:"data,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result holds the records produced by a mapping run
type Result struct {
	Influencers []hub.Record
	Campaigns   []hub.Record
	Shipments   []hub.Record
	Content     []hub.Record
	Contracts   []hub.Record
	FlaggedRows []FlaggedRow

	// Skipped counts blank data rows that were ignored
	Skipped int
}

// ByTab returns the produced records keyed by destination tab
func (r *Result) ByTab() map[string][]hub.Record {
	return map[string][]hub.Record{
		hub.TabInfluencers: r.Influencers,
		hub.TabCampaigns:   r.Campaigns,
		hub.TabShipments:   r.Shipments,
		hub.TabContent:     r.Content,
		hub.TabContracts:   r.Contracts,
	}
}

// TabPreview is the raw shape of one external tab
type TabPreview struct {
	Headers  []string   `json:"headers"`
	RowCount int        `json:"rowCount"`
	Sample   [][]string `json:"sample"`
}

// PreviewResult describes one external spreadsheet without mapping it
type PreviewResult struct {
	URL    string                `json:"url"`
	Sheets map[string]TabPreview `json:"sheets"`
	Error  *string               `json:"error"`
}
