// Package digest delivers scheduled reminder digests to a webhook.
package digest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethanbaker/influencer-hub/internal/metrics"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const MAX_DIGEST_RETRIES = 3

// ErrDisabled is returned when a digest is requested but none is configured
var ErrDisabled = errors.New("reminder digest is not configured")

// Payload is the JSON body posted to the callback URL
type Payload struct {
	GeneratedAt string               `json:"generated_at"`
	Summary     reminders.Summary    `json:"summary"`
	Reminders   []reminders.Reminder `json:"reminders"`
}

// Result describes one digest cycle
type Result struct {
	Sent      bool `json:"sent"`
	Reminders int  `json:"reminders"`
}

// Manager schedules digest cycles with cron
type Manager struct {
	cfg        *Config
	store      hub.StoreInterface
	logger     *zap.Logger
	httpClient *http.Client
	cron       *cron.Cron
	now        func() time.Time
}

// NewManager creates a digest manager. Nothing is scheduled until Start
func NewManager(cfg *Config, store hub.StoreInterface, logger *zap.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, ErrDisabled
	}
	if store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &Manager{
		cfg:        cfg,
		store:      store,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cron:       cron.New(),
		now:        time.Now,
	}, nil
}

// Start registers the cron job and starts the scheduler
func (m *Manager) Start() error {
	_, err := m.cron.AddFunc(m.cfg.Schedule, func() {
		if _, err := m.RunOnce(context.Background()); err != nil {
			m.logger.Error("digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule '%s': %w", m.cfg.Schedule, err)
	}

	m.cron.Start()
	m.logger.Info("digest scheduled", zap.String("schedule", m.cfg.Schedule), zap.String("min_priority", m.cfg.MinPriority))
	return nil
}

// Stop stops the scheduler, waiting for a running cycle to finish
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
}

// RunOnce computes reminders and posts them to the callback URL. Empty digests are not sent
func (m *Manager) RunOnce(ctx context.Context) (*Result, error) {
	now := m.now()

	collections := make(map[string][]hub.Record, 3)
	for _, tab := range []string{hub.TabCampaigns, hub.TabContent, hub.TabContracts} {
		recs, err := m.store.ReadSheet(ctx, tab)
		if err != nil {
			metrics.DigestDeliveriesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to read %s: %w", tab, err)
		}
		collections[tab] = recs
	}

	all := reminders.Build(now, collections[hub.TabCampaigns], collections[hub.TabContent], collections[hub.TabContracts])
	filtered := reminders.Filter(all, m.cfg.floor())
	if len(filtered) == 0 {
		metrics.DigestDeliveriesTotal.WithLabelValues("empty").Inc()
		m.logger.Debug("no reminders to send")
		return &Result{}, nil
	}

	payload := &Payload{
		GeneratedAt: hub.Timestamp(now),
		Summary:     reminders.Summarize(filtered),
		Reminders:   filtered,
	}

	var err error
	for i := 0; i < MAX_DIGEST_RETRIES; i++ {
		if err = m.send(ctx, payload); err == nil {
			metrics.DigestDeliveriesTotal.WithLabelValues("success").Inc()
			m.logger.Info("digest sent", zap.Int("reminders", len(filtered)))
			return &Result{Sent: true, Reminders: len(filtered)}, nil
		}
		m.logger.Warn("failed to send digest", zap.Int("attempt", i+1), zap.Error(err))
	}

	metrics.DigestDeliveriesTotal.WithLabelValues("error").Inc()
	return nil, fmt.Errorf("failed to send digest after %d attempts: %w", MAX_DIGEST_RETRIES, err)
}

// send posts one payload to the callback URL
func (m *Manager) send(ctx context.Context, payload *Payload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.CallbackURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "influencer-hub-digest/1.0")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("callback returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
