package imports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethanbaker/influencer-hub/internal/metrics"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/importer"
	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrFetchUnavailable is reported for every URL when no external spreadsheet reader is configured
var ErrFetchUnavailable = errors.New("external spreadsheets can only be read with the google store backend")

// Service previews and imports external spreadsheets
type Service struct {
	store   hub.StoreInterface
	fetcher importer.Fetcher
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

var service *Service

/** ---- INIT ---- */

// Init sets up the import service. A nil fetcher fails every URL with ErrFetchUnavailable
func Init(store hub.StoreInterface, fetcher importer.Fetcher, logger *zap.Logger) {
	if fetcher == nil {
		fetcher = unavailableFetcher{}
	}

	service = &Service{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// GetService returns the service set by Init
func GetService() *Service {
	return service
}

/** ---- OPERATIONS ---- */

// Preview reads each URL and reports its raw headers, row counts and sample rows
func (s *Service) Preview(ctx context.Context, urls []string) *sdk.ImportPreviewResponse {
	sources := importer.FetchAll(ctx, s.fetcher, urls)

	resp := &sdk.ImportPreviewResponse{
		Results: importer.Preview(sources),
		Errors:  []sdk.ImportError{},
	}
	for _, source := range sources {
		if source.Err != nil {
			resp.Errors = append(resp.Errors, sdk.ImportError{URL: source.URL, Error: source.Err.Error()})
			s.logger.Warn("failed to read external spreadsheet", zap.String("url", source.URL), zap.Error(source.Err))
		}
	}

	return resp
}

// Run maps every URL onto the hub's tabs and appends the produced rows
func (s *Service) Run(ctx context.Context, urls []string) (*sdk.ImportRunResponse, error) {
	if err := s.store.EnsureSpreadsheet(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare spreadsheet: %w", err)
	}

	sources := importer.FetchAll(ctx, s.fetcher, urls)
	result := importer.Map(importer.Options{Now: s.now(), NewID: s.newID}, sources)

	byTab := result.ByTab()
	for _, tab := range hub.Tabs() {
		recs := byTab[tab]
		if len(recs) == 0 {
			continue
		}
		if err := s.store.BatchAppendRows(ctx, tab, recs); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", tab, err)
		}
	}
	metrics.RecordImport(result)

	flagged := result.FlaggedRows
	if flagged == nil {
		flagged = []importer.FlaggedRow{}
	}

	resp := &sdk.ImportRunResponse{
		Success: true,
		Results: sdk.ImportCounts{
			Influencers: len(result.Influencers),
			Campaigns:   len(result.Campaigns),
			Shipments:   len(result.Shipments),
			Content:     len(result.Content),
			Contracts:   len(result.Contracts),
			Flagged:     len(flagged),
		},
		FlaggedRows: flagged,
	}

	s.logger.Info("imported external spreadsheets",
		zap.Int("urls", len(sources)),
		zap.Int("campaigns", resp.Results.Campaigns),
		zap.Int("flagged", resp.Results.Flagged),
	)
	return resp, nil
}

// unavailableFetcher stands in when the store backend has no Google credentials
type unavailableFetcher struct{}

func (unavailableFetcher) FetchExternalSheet(ctx context.Context, url string) ([]importer.Tab, error) {
	return nil, ErrFetchUnavailable
}
