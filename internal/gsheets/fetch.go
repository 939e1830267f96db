package gsheets

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ethanbaker/influencer-hub/pkg/importer"
	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"
)

// ErrInvalidURL is returned for URLs without a spreadsheet id
var ErrInvalidURL = errors.New("invalid Google Sheets URL")

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the spreadsheet id from a Google Sheets URL
func SpreadsheetID(url string) (string, error) {
	match := spreadsheetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", ErrInvalidURL
	}
	return match[1], nil
}

// Fetcher reads external spreadsheets through the Sheets API
type Fetcher struct {
	sheets *sheets.Service
	logger *zap.Logger
}

// NewFetcher creates a Fetcher using an authenticated Sheets service
func NewFetcher(service *sheets.Service, logger *zap.Logger) *Fetcher {
	return &Fetcher{sheets: service, logger: logger}
}

// FetchExternalSheet reads columns A:Z of every tab, in tab order, skipping empty tabs
func (f *Fetcher) FetchExternalSheet(ctx context.Context, url string) ([]importer.Tab, error) {
	id, err := SpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	meta, err := f.sheets.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	tabs := []importer.Tab{}
	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil {
			continue
		}
		title := sheet.Properties.Title

		values, err := f.sheets.Spreadsheets.Values.Get(id, A1(title, "A:Z")).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to read tab %s: %w", title, err)
		}
		if len(values.Values) == 0 {
			continue
		}

		tabs = append(tabs, importer.Tab{Name: title, Rows: Rows(values.Values)})
	}

	f.logger.Debug("fetched external sheet", zap.String("spreadsheet_id", id), zap.Int("tabs", len(tabs)))
	return tabs, nil
}
