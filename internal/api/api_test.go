package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/influencer-hub/internal/stores/records"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/importer"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/ethanbaker/influencer-hub/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher map[string][]importer.Tab

func (f stubFetcher) FetchExternalSheet(ctx context.Context, url string) ([]importer.Tab, error) {
	tabs, ok := f[url]
	if !ok {
		return nil, errors.New("no access")
	}
	return tabs, nil
}

func newTestEngine(t *testing.T, values map[string]string, fetcher importer.Fetcher) (*gin.Engine, hub.StoreInterface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := records.NewInMemoryStore()
	deps := &Dependencies{Store: store, Logger: zap.NewNop()}
	if fetcher != nil {
		deps.Fetcher = fetcher
	}
	return NewEngine(utils.NewConfig(values), deps), store
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) sdk.ApiResponse[T] {
	t.Helper()
	var out sdk.ApiResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	w := do(t, engine, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[sdk.HealthStatus](t, w)
	assert.Equal(t, api_types.StatusSuccess, resp.Status)
	assert.Equal(t, "ok", resp.Data.Status)

	w = do(t, engine, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodGet, "/api/nothing-here", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIKey(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{utils.KEY_API_KEY: "secret"}, nil)

	w := do(t, engine, http.MethodGet, "/api/influencers", nil, nil)
	assert.NotEqual(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodGet, "/api/influencers", nil, map[string]string{"X-API-KEY": "wrong"})
	assert.NotEqual(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodGet, "/api/influencers", nil, map[string]string{"X-API-KEY": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open
	w = do(t, engine, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCampaignLifecycle(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	// Create with track defaults
	w := do(t, engine, http.MethodPost, "/api/campaigns", map[string]any{"influencerName": "Mia", "type": "Paid", "Bogus": "x"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[hub.Record](t, w).Data
	id := created.ID()
	require.NotEmpty(t, id)
	assert.Equal(t, hub.StatusReachedOut, created[hub.ColStatus])
	assert.Equal(t, created[hub.ColCreatedAt], created[hub.ColUpdatedAt])
	assert.Contains(t, created, "Outreach Channel")
	assert.NotContains(t, created, "Bogus")

	t.Run("update merges", func(t *testing.T) {
		time.Sleep(time.Millisecond)
		w := do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"status": hub.StatusInterested, "ID": "other", "Created At": "2000-01-01"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[hub.Record](t, w).Data
		assert.Equal(t, id, updated.ID())
		assert.Equal(t, hub.StatusInterested, updated[hub.ColStatus])
		assert.Equal(t, "Mia", updated[hub.ColInfluencerName])
		assert.Equal(t, created[hub.ColCreatedAt], updated[hub.ColCreatedAt])

		w = do(t, engine, http.MethodGet, "/api/campaigns", nil, nil)
		list := decode[[]hub.Record](t, w).Data
		require.Len(t, list, 1)
		assert.Equal(t, hub.StatusInterested, list[0][hub.ColStatus])
	})

	t.Run("invalid status", func(t *testing.T) {
		w := do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"status": hub.StatusDelivered}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, api_types.StatusError, decode[any](t, w).Status)
	})

	t.Run("missing row", func(t *testing.T) {
		w := do(t, engine, http.MethodPut, "/api/campaigns/nope", map[string]any{"notes": "x"}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, engine, http.MethodDelete, "/api/campaigns/"+id, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(t, engine, http.MethodDelete, "/api/campaigns/"+id, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateValidationAndDefaults(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	tests := []struct {
		name string
		path string
		body map[string]any
		code int
	}{
		{"influencer default platform", "/api/influencers", map[string]any{"name": "Mia"}, http.StatusOK},
		{"unknown platform", "/api/influencers", map[string]any{"name": "Mia", "platform": "MySpace"}, http.StatusBadRequest},
		{"unknown type", "/api/campaigns", map[string]any{"type": "Barter"}, http.StatusBadRequest},
		{"status from another track", "/api/campaigns", map[string]any{"type": "Gifted", "status": "Rate Negotiating"}, http.StatusBadRequest},
		{"tri-state", "/api/contracts", map[string]any{"signed": "maybe"}, http.StatusBadRequest},
		{"tri-state ok", "/api/content", map[string]any{"whitelistingApproved": "Y"}, http.StatusOK},
		{"shipment", "/api/shipments", map[string]any{"trackingNumber": "1Z999"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, engine, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := do(t, engine, http.MethodGet, "/api/influencers", nil, nil)
	list := decode[[]hub.Record](t, w).Data
	require.Len(t, list, 1)
	assert.Equal(t, hub.PlatformInstagram, list[0]["Platform"])

	w = do(t, engine, http.MethodPost, "/api/campaigns", "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivityIsAppendOnly(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	w := do(t, engine, http.MethodPost, "/api/activity", map[string]any{"note": "Sent DM", "Campaign ID": "c1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	row := decode[hub.Record](t, w).Data
	assert.Equal(t, "Team", row["Created By"])
	assert.Equal(t, "c1", row[hub.ColCampaignID])

	w = do(t, engine, http.MethodPut, "/api/activity/"+row.ID(), map[string]any{"note": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, engine, http.MethodDelete, "/api/activity/"+row.ID(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReminderRoutes(t *testing.T) {
	engine, store := newTestEngine(t, nil, nil)
	now := time.Now()

	require.NoError(t, store.BatchAppendRows(context.Background(), hub.TabCampaigns, []hub.Record{
		{hub.ColID: "c1", hub.ColInfluencerName: "Mia", hub.ColType: hub.TypeGifted, hub.ColStatus: hub.StatusDMSent, hub.ColUpdatedAt: hub.Timestamp(now.AddDate(0, 0, -8))},
		{hub.ColID: "c2", hub.ColInfluencerName: "Jake", hub.ColType: hub.TypeGifted, hub.ColStatus: hub.StatusDMSent, hub.ColUpdatedAt: hub.Timestamp(now.AddDate(0, 0, -4))},
	}))

	tests := []struct {
		query string
		code  int
		count int
	}{
		{"", http.StatusOK, 2},
		{"?priority=medium", http.StatusOK, 2},
		{"?priority=high", http.StatusOK, 1},
		{"?priority=urgent", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run("query"+tt.query, func(t *testing.T) {
			w := do(t, engine, http.MethodGet, "/api/reminders"+tt.query, nil, nil)
			require.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Len(t, decode[[]reminders.Reminder](t, w).Data, tt.count)
			}
		})
	}

	w := do(t, engine, http.MethodGet, "/api/reminders/summary", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[reminders.Summary](t, w).Data
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.ByPriority[reminders.PriorityHigh])
	assert.Equal(t, 2, summary.ByType[reminders.TypeFollowUp])

	// No digest configured
	w = do(t, engine, http.MethodPost, "/api/reminders/digest", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestImportRoutes(t *testing.T) {
	fetcher := stubFetcher{
		"https://docs.google.com/spreadsheets/d/abc": {
			{Name: "Gifted Outreach", Rows: [][]string{
				{"Name", "Handle", "Status", "Tracking"},
				{"Mia", "@mia", "shipped", "1Z"},
				{"", "", "posted", ""},
			}},
		},
	}
	engine, store := newTestEngine(t, nil, fetcher)

	t.Run("urls required", func(t *testing.T) {
		for _, path := range []string{"/api/import/preview", "/api/import/run"} {
			w := do(t, engine, http.MethodPost, path, map[string]any{}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "urls array required", decode[any](t, w).Message)

			w = do(t, engine, http.MethodPost, path, map[string]any{"urls": "one"}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})

	t.Run("preview", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/import/preview", sdk.ImportRequest{URLs: []string{"https://docs.google.com/spreadsheets/d/abc", "  ", "https://docs.google.com/spreadsheets/d/private"}}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[sdk.ImportPreviewResponse](t, w).Data
		require.Len(t, resp.Results, 2)
		assert.Equal(t, 2, resp.Results[0].Sheets["Gifted Outreach"].RowCount)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "no access", resp.Errors[0].Error)

		has, err := store.HasData(context.Background())
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("run", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/import/run", sdk.ImportRequest{URLs: []string{"https://docs.google.com/spreadsheets/d/abc"}}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[sdk.ImportRunResponse](t, w).Data
		assert.True(t, resp.Success)
		assert.Equal(t, sdk.ImportCounts{Influencers: 1, Campaigns: 1, Shipments: 1, Flagged: 1}, resp.Results)
		require.Len(t, resp.FlaggedRows, 1)
		assert.Equal(t, 3, resp.FlaggedRows[0].Row)

		campaigns, err := store.ReadSheet(context.Background(), hub.TabCampaigns)
		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, hub.StatusProductSent, campaigns[0][hub.ColStatus])
	})

	t.Run("empty urls", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/import/run", sdk.ImportRequest{URLs: []string{}}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[sdk.ImportRunResponse](t, w).Data
		assert.Equal(t, sdk.ImportCounts{}, resp.Results)
		assert.NotNil(t, resp.FlaggedRows)
	})
}

func TestUpdateImportedCampaign(t *testing.T) {
	fetcher := stubFetcher{
		"https://docs.google.com/spreadsheets/d/paid": {
			{Name: "Paid", Rows: [][]string{
				{"Name", "Status"},
				{"Ava", "ghosted"},
			}},
		},
	}
	engine, store := newTestEngine(t, nil, fetcher)

	w := do(t, engine, http.MethodPost, "/api/import/run", sdk.ImportRequest{URLs: []string{"https://docs.google.com/spreadsheets/d/paid"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	campaigns, err := store.ReadSheet(context.Background(), hub.TabCampaigns)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	require.Equal(t, hub.TypePaid, campaigns[0][hub.ColType])
	require.Equal(t, hub.StatusNoResponse, campaigns[0][hub.ColStatus])
	id := campaigns[0].ID()

	t.Run("notes only keeps stored status", func(t *testing.T) {
		w := do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"notes": "hi"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		rec := decode[hub.Record](t, w).Data
		assert.Equal(t, "hi", rec["Notes"])
		assert.Equal(t, hub.StatusNoResponse, rec[hub.ColStatus])
	})

	t.Run("status change is checked against type", func(t *testing.T) {
		w := do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"status": hub.StatusDelivered}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"Status": hub.StatusGhosted}, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("type change is checked against status", func(t *testing.T) {
		w := do(t, engine, http.MethodPut, "/api/campaigns/"+id, map[string]any{"type": hub.TypeRetainer}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportWithoutFetcher(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	w := do(t, engine, http.MethodPost, "/api/import/run", sdk.ImportRequest{URLs: []string{"https://docs.google.com/spreadsheets/d/abc"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[sdk.ImportRunResponse](t, w).Data
	require.Len(t, resp.FlaggedRows, 1)
	assert.Contains(t, resp.FlaggedRows[0].Error, "Could not read sheet")
}

func TestSheetsRoutes(t *testing.T) {
	engine, store := newTestEngine(t, nil, nil)

	status := func() bool {
		w := do(t, engine, http.MethodGet, "/api/sheets/status", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		return decode[sdk.SheetsStatus](t, w).Data.HasData
	}

	assert.False(t, status())

	w := do(t, engine, http.MethodPost, "/api/sheets/seed", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[sdk.SuccessResult](t, w).Data.Success)
	assert.True(t, status())

	for _, tab := range hub.Tabs() {
		rows, err := store.ReadSheet(context.Background(), tab)
		require.NoError(t, err)
		assert.NotEmpty(t, rows, tab)
	}

	// Seeding twice replaces rather than appends
	influencers, _ := store.ReadSheet(context.Background(), hub.TabInfluencers)
	do(t, engine, http.MethodPost, "/api/sheets/seed", nil, nil)
	again, _ := store.ReadSheet(context.Background(), hub.TabInfluencers)
	assert.Len(t, again, len(influencers))

	w = do(t, engine, http.MethodPost, "/api/sheets/init", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, status())
}
