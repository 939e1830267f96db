package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
)

// Client wraps calls to the influencer hub backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

/** Health */

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out ApiResponse[HealthStatus]
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("check health", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

/** Records */

// List returns every row of a resource (influencers, campaigns, shipments, content, contracts, activity)
func (c *Client) List(ctx context.Context, resource string) ([]hub.Record, error) {
	path := fmt.Sprintf("/api/%s", url.PathEscape(resource))

	var out ApiResponse[[]hub.Record]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("list "+resource, out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// Create adds a row to a resource. Body keys may be headers or their camelCase aliases
func (c *Client) Create(ctx context.Context, resource string, body map[string]any) (hub.Record, error) {
	path := fmt.Sprintf("/api/%s", url.PathEscape(resource))

	var out ApiResponse[hub.Record]
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("create "+resource, out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// Update merges body into the row with the given ID
func (c *Client) Update(ctx context.Context, resource, id string, body map[string]any) (hub.Record, error) {
	path := fmt.Sprintf("/api/%s/%s", url.PathEscape(resource), url.PathEscape(id))

	var out ApiResponse[hub.Record]
	if err := c.doJSON(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("update "+resource, out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// Delete removes the row with the given ID
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	path := fmt.Sprintf("/api/%s/%s", url.PathEscape(resource), url.PathEscape(id))

	var out ApiResponse[SuccessResult]
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return err
	}
	return checkStatus("delete "+resource, out)
}

/** Reminders */

// Reminders returns the reminder worklist. An empty priority returns every reminder
func (c *Client) Reminders(ctx context.Context, priority string) ([]reminders.Reminder, error) {
	path := "/api/reminders"
	if priority != "" {
		path += "?priority=" + url.QueryEscape(priority)
	}

	var out ApiResponse[[]reminders.Reminder]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("get reminders", out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// ReminderSummary returns reminder counts by priority and type
func (c *Client) ReminderSummary(ctx context.Context) (*reminders.Summary, error) {
	var out ApiResponse[reminders.Summary]
	if err := c.doJSON(ctx, http.MethodGet, "/api/reminders/summary", nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("get reminder summary", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// SendDigest asks the server to deliver a reminder digest now
func (c *Client) SendDigest(ctx context.Context) (*DigestResult, error) {
	var out ApiResponse[DigestResult]
	if err := c.doJSON(ctx, http.MethodPost, "/api/reminders/digest", nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("send digest", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

/** Import */

// ImportPreview returns the raw headers and sample rows of external spreadsheets
func (c *Client) ImportPreview(ctx context.Context, urls []string) (*ImportPreviewResponse, error) {
	var out ApiResponse[ImportPreviewResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/import/preview", &ImportRequest{URLs: urls}, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("preview import", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// ImportRun imports external spreadsheets into the hub
func (c *Client) ImportRun(ctx context.Context, urls []string) (*ImportRunResponse, error) {
	var out ApiResponse[ImportRunResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/import/run", &ImportRequest{URLs: urls}, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("run import", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

/** Sheets */

// Status reports whether the hub holds any influencers
func (c *Client) Status(ctx context.Context) (*SheetsStatus, error) {
	var out ApiResponse[SheetsStatus]
	if err := c.doJSON(ctx, http.MethodGet, "/api/sheets/status", nil, &out); err != nil {
		return nil, err
	}
	if err := checkStatus("get status", out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Seed replaces all data with the demo dataset
func (c *Client) Seed(ctx context.Context) error {
	var out ApiResponse[SuccessResult]
	if err := c.doJSON(ctx, http.MethodPost, "/api/sheets/seed", nil, &out); err != nil {
		return err
	}
	return checkStatus("seed", out)
}

// Init clears all data, creating the spreadsheet if needed
func (c *Client) Init(ctx context.Context) error {
	var out ApiResponse[SuccessResult]
	if err := c.doJSON(ctx, http.MethodPost, "/api/sheets/init", nil, &out); err != nil {
		return err
	}
	return checkStatus("init", out)
}

// checkStatus turns a fail or error envelope into an error
func checkStatus[T any](action string, out ApiResponse[T]) error {
	switch out.Status {
	case api_types.StatusFail:
		return fmt.Errorf("failed to %s: %s", action, out.Message)
	case api_types.StatusError:
		return fmt.Errorf("error trying to %s (%s): %v", action, out.Message, out.Error)
	}
	return nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[BACKEND]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
