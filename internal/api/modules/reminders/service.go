package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/ethanbaker/influencer-hub/internal/digest"
	"github.com/ethanbaker/influencer-hub/internal/metrics"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"go.uber.org/zap"
)

// Service computes reminders from the current store contents
type Service struct {
	store  hub.StoreInterface
	digest *digest.Manager
	logger *zap.Logger
	now    func() time.Time
}

var service *Service

/** ---- INIT ---- */

// Init sets up the reminders service. manager may be nil when no digest is configured
func Init(store hub.StoreInterface, manager *digest.Manager, logger *zap.Logger) {
	service = &Service{
		store:  store,
		digest: manager,
		logger: logger,
		now:    time.Now,
	}
}

// GetService returns the service set by Init
func GetService() *Service {
	return service
}

/** ---- OPERATIONS ---- */

// Reminders reads campaigns, content and contracts and runs the reminder rules over them
func (s *Service) Reminders(ctx context.Context) ([]reminders.Reminder, error) {
	collections := make(map[string][]hub.Record, 3)
	for _, tab := range []string{hub.TabCampaigns, hub.TabContent, hub.TabContracts} {
		recs, err := s.store.ReadSheet(ctx, tab)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", tab, err)
		}
		collections[tab] = recs
	}

	all := reminders.Build(s.now(), collections[hub.TabCampaigns], collections[hub.TabContent], collections[hub.TabContracts])
	metrics.RecordReminders(reminders.Summarize(all))

	s.logger.Debug("computed reminders", zap.Int("count", len(all)))
	return all, nil
}

// RunDigest sends one reminder digest immediately
func (s *Service) RunDigest(ctx context.Context) (*digest.Result, error) {
	if s.digest == nil {
		return nil, digest.ErrDisabled
	}
	return s.digest.RunOnce(ctx)
}
