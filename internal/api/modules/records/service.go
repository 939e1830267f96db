package records

import (
	"context"
	"slices"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

/** ---- SERVICE ---- */

// Service implements create, read, update and delete over the record tabs
type Service struct {
	store  hub.StoreInterface
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

var service *Service

/** ---- INIT ---- */

// Init sets up the records service
func Init(store hub.StoreInterface, logger *zap.Logger) {
	service = NewService(store, logger)
}

// NewService creates a records service backed by store
func NewService(store hub.StoreInterface, logger *zap.Logger) *Service {
	return &Service{
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

// List returns every row of a tab
func (s *Service) List(ctx context.Context, tab string) ([]hub.Record, error) {
	return s.store.ReadSheet(ctx, tab)
}

// Create builds a row from a request body, fills defaults and timestamps, validates it and appends it
func (s *Service) Create(ctx context.Context, tab string, body map[string]any) (hub.Record, error) {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return nil, err
	}

	rec := complete(schema, hub.FromBody(schema, body))
	for _, col := range schema.Columns {
		if rec[col.Header] == "" && col.Default != "" {
			rec[col.Header] = col.Default
		}
	}
	if tab == hub.TabCampaigns && rec[hub.ColStatus] == "" {
		rec[hub.ColStatus] = hub.DefaultStatus(rec[hub.ColType])
	}

	now := hub.Timestamp(s.now())
	rec[hub.ColID] = s.newID()
	rec[hub.ColCreatedAt] = now
	if tab == hub.TabCampaigns {
		rec[hub.ColUpdatedAt] = now
	}

	if err := hub.Validate(tab, rec); err != nil {
		return nil, err
	}
	if err := s.store.AppendRow(ctx, tab, rec); err != nil {
		return nil, err
	}

	s.logger.Info("created record", zap.String("tab", tab), zap.String("id", rec.ID()))
	return rec, nil
}

// Update merges a request body over the stored row. ID and Created At are kept; campaigns get a new Updated At
func (s *Service) Update(ctx context.Context, tab, id string, body map[string]any) (hub.Record, error) {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return nil, err
	}

	existing, err := hub.FindByID(ctx, s.store, tab, id)
	if err != nil {
		return nil, err
	}

	rec := complete(schema, existing)
	for k, v := range hub.FromBody(schema, body) {
		rec[k] = v
	}
	rec[hub.ColID] = id
	rec[hub.ColCreatedAt] = existing[hub.ColCreatedAt]
	if tab == hub.TabCampaigns {
		rec[hub.ColUpdatedAt] = hub.Timestamp(s.now())
	}

	validate := hub.Validate
	if !mentions(schema, body, hub.ColStatus, hub.ColType) {
		validate = hub.ValidateKeepingStatus
	}
	if err := validate(tab, rec); err != nil {
		return nil, err
	}
	if err := s.store.UpdateRow(ctx, tab, id, rec); err != nil {
		return nil, err
	}

	s.logger.Info("updated record", zap.String("tab", tab), zap.String("id", id))
	return rec, nil
}

// Delete removes a row by ID
func (s *Service) Delete(ctx context.Context, tab, id string) error {
	if err := s.store.DeleteRow(ctx, tab, id); err != nil {
		return err
	}

	s.logger.Info("deleted record", zap.String("tab", tab), zap.String("id", id))
	return nil
}

// complete returns a copy of rec holding every header of the schema
func complete(schema hub.Schema, rec hub.Record) hub.Record {
	out := make(hub.Record, len(schema.Columns))
	for _, col := range schema.Columns {
		out[col.Header] = rec[col.Header]
	}
	return out
}

// mentions reports whether the body sets any of the given columns
func mentions(schema hub.Schema, body map[string]any, headers ...string) bool {
	for _, col := range schema.Columns {
		if !slices.Contains(headers, col.Header) {
			continue
		}
		if _, ok := hub.BodyValue(body, col); ok {
			return true
		}
	}
	return false
}
