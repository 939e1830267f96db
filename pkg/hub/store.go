package hub

import "context"

// StoreInterface defines the spreadsheet-shaped persistence every backend provides.
// Tabs are the names from Tabs(); rows are projected onto the tab's header order on write
type StoreInterface interface {
	// EnsureSpreadsheet creates the backing spreadsheet and its header rows if needed
	EnsureSpreadsheet(ctx context.Context) error

	ReadSheet(ctx context.Context, tab string) ([]Record, error)
	AppendRow(ctx context.Context, tab string, rec Record) error
	BatchAppendRows(ctx context.Context, tab string, recs []Record) error
	UpdateRow(ctx context.Context, tab, id string, rec Record) error
	DeleteRow(ctx context.Context, tab, id string) error

	// HasData reports whether any influencer rows exist
	HasData(ctx context.Context) (bool, error)

	// ClearAll removes every data row, keeping headers
	ClearAll(ctx context.Context) error

	Close() error
}

// FindByID returns the first record of a tab with the given ID
func FindByID(ctx context.Context, store StoreInterface, tab, id string) (Record, error) {
	recs, err := store.ReadSheet(ctx, tab)
	if err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, NotFound(tab, id)
}
