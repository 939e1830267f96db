package sheets

import (
	"context"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages the backing spreadsheet as a whole
type Service struct {
	store  hub.StoreInterface
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

var service *Service

/** ---- INIT ---- */

// Init sets up the sheets service
func Init(store hub.StoreInterface, logger *zap.Logger) {
	service = &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// GetService returns the service set by Init
func GetService() *Service {
	return service
}

/** ---- OPERATIONS ---- */

// HasData reports whether any influencers are stored
func (s *Service) HasData(ctx context.Context) (bool, error) {
	return s.store.HasData(ctx)
}

// Reset makes sure the spreadsheet exists and removes every data row
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.EnsureSpreadsheet(ctx); err != nil {
		return err
	}
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}

	s.logger.Info("cleared all tabs")
	return nil
}

// Seed replaces every tab with the demo dataset
func (s *Service) Seed(ctx context.Context) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}

	seed := hub.GenerateSeedData(s.now(), s.newID)
	for _, tab := range hub.Tabs() {
		recs := seed[tab]
		if len(recs) == 0 {
			continue
		}
		if err := s.store.BatchAppendRows(ctx, tab, recs); err != nil {
			return err
		}
	}

	s.logger.Info("loaded demo data", zap.Int("influencers", len(seed[hub.TabInfluencers])), zap.Int("campaigns", len(seed[hub.TabCampaigns])))
	return nil
}
