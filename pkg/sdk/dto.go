package sdk

import (
	"errors"
	"net/http"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/importer"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	// Errors do not marshal to JSON on their own
	if e, ok := err.(error); ok {
		err = e.Error()
	}

	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

// NewStoreErrorResponse picks the status code for an error coming from a record store:
// missing rows are 404, invalid records and unknown tabs 400, anything else 500
func NewStoreErrorResponse(message string, err error) ApiResponse[any] {
	var validationErr *hub.ValidationError

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, hub.ErrNotFound):
		code = http.StatusNotFound
	case errors.As(err, &validationErr), errors.Is(err, hub.ErrUnknownTab):
		code = http.StatusBadRequest
	}

	return NewErrorResponse(code, message, err)
}

/** Requests */

// ImportRequest is the body of both import endpoints
type ImportRequest struct {
	URLs []string `json:"urls"`
}

/** Responses */

// HealthStatus is returned by the health endpoint
type HealthStatus struct {
	Status string `json:"status"`
}

// ImportError names an external spreadsheet that could not be read
type ImportError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ImportPreviewResponse is the raw shape of each requested spreadsheet
type ImportPreviewResponse struct {
	Results []importer.PreviewResult `json:"results"`
	Errors  []ImportError            `json:"errors"`
}

// ImportCounts is the number of rows written per tab by an import
type ImportCounts struct {
	Influencers int `json:"influencers"`
	Campaigns   int `json:"campaigns"`
	Shipments   int `json:"shipments"`
	Content     int `json:"content"`
	Contracts   int `json:"contracts"`
	Flagged     int `json:"flagged"`
}

// ImportRunResponse reports what an import wrote and what needs review
type ImportRunResponse struct {
	Success     bool                  `json:"success"`
	Results     ImportCounts          `json:"results"`
	FlaggedRows []importer.FlaggedRow `json:"flaggedRows"`
}

// SheetsStatus reports whether the store holds any influencers
type SheetsStatus struct {
	HasData bool `json:"hasData"`
}

// SuccessResult acknowledges an operation without other data
type SuccessResult struct {
	Success bool `json:"success"`
}

// DigestResult describes a reminder digest run
type DigestResult struct {
	Sent      bool `json:"sent"`
	Reminders int  `json:"reminders"`
}
