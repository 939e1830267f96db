package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// SQL_BATCH_SIZE bounds the rows inserted per statement by BatchAppendRows
const SQL_BATCH_SIZE = 200

// Store keeps every tab in a single MySQL table
type Store struct {
	db *gorm.DB
}

// NewStore creates a new record store with MySQL connection
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newStoreWithDB(db)
}

func newStoreWithDB(db *gorm.DB) (*Store, error) {
	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&RowModel{})
}

// EnsureSpreadsheet makes sure the backing table exists
func (s *Store) EnsureSpreadsheet(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&RowModel{})
}

// ReadSheet returns every row of a tab in insertion order
func (s *Store) ReadSheet(ctx context.Context, tab string) ([]hub.Record, error) {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return nil, err
	}

	var models []RowModel
	if err := s.db.WithContext(ctx).Where("tab = ?", tab).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tab, err)
	}

	out := make([]hub.Record, 0, len(models))
	for i := range models {
		rec, err := models[i].record(schema)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}

// AppendRow adds a row to the end of a tab
func (s *Store) AppendRow(ctx context.Context, tab string, rec hub.Record) error {
	return s.BatchAppendRows(ctx, tab, []hub.Record{rec})
}

// BatchAppendRows adds rows to the end of a tab in one transaction
func (s *Store) BatchAppendRows(ctx context.Context, tab string, recs []hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	models := make([]*RowModel, 0, len(recs))
	for _, rec := range recs {
		model, err := newRowModel(schema, rec)
		if err != nil {
			return err
		}
		models = append(models, model)
	}

	if err := s.db.WithContext(ctx).CreateInBatches(models, SQL_BATCH_SIZE).Error; err != nil {
		return fmt.Errorf("failed to append %d rows to %s: %w", len(recs), tab, err)
	}

	return nil
}

// UpdateRow overwrites the first row of a tab with the given ID
func (s *Store) UpdateRow(ctx context.Context, tab, id string, rec hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}

	existing, err := s.find(ctx, tab, id)
	if err != nil {
		return err
	}

	model, err := newRowModel(schema, rec)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(map[string]any{
		"record_id": model.RecordID,
		"data":      model.Data,
	}).Error; err != nil {
		return fmt.Errorf("failed to update %s row %s: %w", tab, id, err)
	}

	return nil
}

// DeleteRow removes the first row of a tab with the given ID
func (s *Store) DeleteRow(ctx context.Context, tab, id string) error {
	if _, err := hub.SchemaFor(tab); err != nil {
		return err
	}

	existing, err := s.find(ctx, tab, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("failed to delete %s row %s: %w", tab, id, err)
	}

	return nil
}

// HasData reports whether any influencer rows exist
func (s *Store) HasData(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&RowModel{}).Where("tab = ?", hub.TabInfluencers).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count influencers: %w", err)
	}
	return count > 0, nil
}

// ClearAll removes every row of every tab
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("tab IN ?", hub.Tabs()).Delete(&RowModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	return nil
}

// Close releases the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// find returns the oldest row of a tab with the given record ID
func (s *Store) find(ctx context.Context, tab, id string) (*RowModel, error) {
	var model RowModel
	err := s.db.WithContext(ctx).Where("tab = ? AND record_id = ?", tab, id).Order("id").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hub.NotFound(tab, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s row %s: %w", tab, id, err)
	}
	return &model, nil
}
