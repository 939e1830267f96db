package records

import (
	"context"

	"github.com/ethanbaker/influencer-hub/internal/metrics"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"go.uber.org/zap"
)

// Instrumented counts and logs the calls made to another store
type Instrumented struct {
	store   hub.StoreInterface
	backend string
	logger  *zap.Logger
}

// Instrument wraps store, labelling its metrics with backend
func Instrument(store hub.StoreInterface, backend string, logger *zap.Logger) *Instrumented {
	return &Instrumented{store: store, backend: backend, logger: logger}
}

func (s *Instrumented) observe(op, tab string, err error) {
	metrics.RecordStoreOperation(s.backend, op, err)
	if err != nil {
		s.logger.Warn("store operation failed", zap.String("op", op), zap.String("tab", tab), zap.Error(err))
	}
}

func (s *Instrumented) EnsureSpreadsheet(ctx context.Context) error {
	err := s.store.EnsureSpreadsheet(ctx)
	s.observe("ensure", "", err)
	return err
}

func (s *Instrumented) ReadSheet(ctx context.Context, tab string) ([]hub.Record, error) {
	recs, err := s.store.ReadSheet(ctx, tab)
	s.observe("read", tab, err)
	return recs, err
}

func (s *Instrumented) AppendRow(ctx context.Context, tab string, rec hub.Record) error {
	err := s.store.AppendRow(ctx, tab, rec)
	s.observe("append", tab, err)
	return err
}

func (s *Instrumented) BatchAppendRows(ctx context.Context, tab string, recs []hub.Record) error {
	err := s.store.BatchAppendRows(ctx, tab, recs)
	s.observe("batch_append", tab, err)
	if err == nil {
		s.logger.Debug("appended rows", zap.String("tab", tab), zap.Int("count", len(recs)))
	}
	return err
}

func (s *Instrumented) UpdateRow(ctx context.Context, tab, id string, rec hub.Record) error {
	err := s.store.UpdateRow(ctx, tab, id, rec)
	s.observe("update", tab, err)
	return err
}

func (s *Instrumented) DeleteRow(ctx context.Context, tab, id string) error {
	err := s.store.DeleteRow(ctx, tab, id)
	s.observe("delete", tab, err)
	return err
}

func (s *Instrumented) HasData(ctx context.Context) (bool, error) {
	ok, err := s.store.HasData(ctx)
	s.observe("has_data", hub.TabInfluencers, err)
	return ok, err
}

func (s *Instrumented) ClearAll(ctx context.Context) error {
	err := s.store.ClearAll(ctx)
	s.observe("clear", "", err)
	return err
}

func (s *Instrumented) Close() error {
	return s.store.Close()
}
