package records

import (
	"context"
	"sync"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
)

// InMemoryStore provides an in-memory implementation of hub.StoreInterface
type InMemoryStore struct {
	tabs  map[string][]hub.Record
	mutex sync.RWMutex
}

// NewInMemoryStore creates a new, empty in-memory record store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tabs: make(map[string][]hub.Record),
	}
}

// EnsureSpreadsheet is a no-op; every tab exists from the start
func (s *InMemoryStore) EnsureSpreadsheet(_ context.Context) error {
	return nil
}

// ReadSheet returns copies of every row of a tab
func (s *InMemoryStore) ReadSheet(_ context.Context, tab string) ([]hub.Record, error) {
	if _, err := hub.SchemaFor(tab); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rows := s.tabs[tab]
	out := make([]hub.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Clone()
	}
	return out, nil
}

// AppendRow adds a row to the end of a tab
func (s *InMemoryStore) AppendRow(ctx context.Context, tab string, rec hub.Record) error {
	return s.BatchAppendRows(ctx, tab, []hub.Record{rec})
}

// BatchAppendRows adds rows to the end of a tab
func (s *InMemoryStore) BatchAppendRows(_ context.Context, tab string, recs []hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, rec := range recs {
		s.tabs[tab] = append(s.tabs[tab], project(schema, rec))
	}
	return nil
}

// UpdateRow overwrites the first row of a tab with the given ID
func (s *InMemoryStore) UpdateRow(_ context.Context, tab, id string, rec hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOf(tab, id)
	if idx < 0 {
		return hub.NotFound(tab, id)
	}

	s.tabs[tab][idx] = project(schema, rec)
	return nil
}

// DeleteRow removes the first row of a tab with the given ID
func (s *InMemoryStore) DeleteRow(_ context.Context, tab, id string) error {
	if _, err := hub.SchemaFor(tab); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOf(tab, id)
	if idx < 0 {
		return hub.NotFound(tab, id)
	}

	rows := s.tabs[tab]
	s.tabs[tab] = append(rows[:idx:idx], rows[idx+1:]...)
	return nil
}

// HasData reports whether any influencer rows exist
func (s *InMemoryStore) HasData(_ context.Context) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.tabs[hub.TabInfluencers]) > 0, nil
}

// ClearAll removes every row of every tab
func (s *InMemoryStore) ClearAll(_ context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tabs = make(map[string][]hub.Record)
	return nil
}

// Close is a no-op for the in-memory store
func (s *InMemoryStore) Close() error {
	return nil
}

// indexOf finds a row by ID. Callers hold the lock
func (s *InMemoryStore) indexOf(tab, id string) int {
	for i, row := range s.tabs[tab] {
		if row.ID() == id {
			return i
		}
	}
	return -1
}

// project keeps only the tab's headers, filling missing ones with ""
func project(schema hub.Schema, rec hub.Record) hub.Record {
	return hub.FromRow(schema.Headers(), schema.Project(rec))
}
