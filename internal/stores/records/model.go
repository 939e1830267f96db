package records

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
)

// RowModel is one tab row in the SQL backend. Data holds the row as a header -> value JSON object
type RowModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	Tab      string `json:"tab" gorm:"column:tab;not null;size:64;index:idx_hub_rows_tab_record"`
	RecordID string `json:"record_id" gorm:"column:record_id;size:64;index:idx_hub_rows_tab_record"`
	Data     string `json:"data" gorm:"column:data;type:text"`
}

// TableName sets the table name for GORM
func (RowModel) TableName() string {
	return "hub_rows"
}

// newRowModel projects rec onto the schema and encodes it
func newRowModel(schema hub.Schema, rec hub.Record) (*RowModel, error) {
	projected := project(schema, rec)

	data, err := json.Marshal(projected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s row: %w", schema.Tab, err)
	}

	return &RowModel{
		Tab:      schema.Tab,
		RecordID: projected.ID(),
		Data:     string(data),
	}, nil
}

// record decodes the stored row, filling any header the stored JSON lacks
func (m *RowModel) record(schema hub.Schema) (hub.Record, error) {
	var stored hub.Record
	if err := json.Unmarshal([]byte(m.Data), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s row %d: %w", m.Tab, m.ID, err)
	}

	return project(schema, stored), nil
}
