package digest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethanbaker/influencer-hub/internal/stores/records"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) hub.StoreInterface {
	t.Helper()
	store := records.NewInMemoryStore()
	require.NoError(t, store.BatchAppendRows(context.Background(), hub.TabCampaigns, []hub.Record{
		// High: DM sent 8 days ago
		{hub.ColID: "c1", hub.ColInfluencerName: "Mia", hub.ColType: hub.TypeGifted, hub.ColStatus: hub.StatusDMSent, hub.ColUpdatedAt: hub.Timestamp(now.AddDate(0, 0, -8))},
		// Medium: DM sent 4 days ago
		{hub.ColID: "c2", hub.ColInfluencerName: "Jake", hub.ColType: hub.TypeGifted, hub.ColStatus: hub.StatusDMSent, hub.ColUpdatedAt: hub.Timestamp(now.AddDate(0, 0, -4))},
	}))
	return store
}

func newTestManager(t *testing.T, cfg *Config, store hub.StoreInterface) *Manager {
	t.Helper()
	m, err := NewManager(cfg, store, zap.NewNop())
	require.NoError(t, err)
	m.now = func() time.Time { return now }
	return m
}

func TestRunOnceDelivers(t *testing.T) {
	var received Payload
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tests := []struct {
		name        string
		minPriority string
		want        []string
	}{
		{"all priorities", "low", []string{"c1-dm-sent", "c2-dm-sent"}},
		{"high only", "high", []string{"c1-dm-sent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, &Config{CallbackURL: server.URL, MinPriority: tt.minPriority}, seededStore(t))

			result, err := m.RunOnce(context.Background())
			require.NoError(t, err)
			assert.True(t, result.Sent)
			assert.Equal(t, len(tt.want), result.Reminders)

			ids := make([]string, len(received.Reminders))
			for i, r := range received.Reminders {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), received.Summary.Total)
			assert.Equal(t, hub.Timestamp(now), received.GeneratedAt)
			assert.Equal(t, "influencer-hub-digest/1.0", agent)
		})
	}
}

func TestRunOnceSkipsEmptyDigest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	m := newTestManager(t, &Config{CallbackURL: server.URL}, records.NewInMemoryStore())
	result, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestRunOnceRetries(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < MAX_DIGEST_RETRIES {
				http.Error(w, "busy", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		m := newTestManager(t, &Config{CallbackURL: server.URL}, seededStore(t))
		result, err := m.RunOnce(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Sent)
		assert.Equal(t, int32(MAX_DIGEST_RETRIES), atomic.LoadInt32(&calls))
	})

	t.Run("gives up", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer server.Close()

		m := newTestManager(t, &Config{CallbackURL: server.URL}, seededStore(t))
		_, err := m.RunOnce(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "down")
		assert.Equal(t, int32(MAX_DIGEST_RETRIES), atomic.LoadInt32(&calls))
	})
}

func TestNewManager(t *testing.T) {
	_, err := NewManager(nil, records.NewInMemoryStore(), zap.NewNop())
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewManager(&Config{}, records.NewInMemoryStore(), zap.NewNop())
	assert.Error(t, err)

	_, err = NewManager(&Config{CallbackURL: "http://x", MinPriority: "urgent"}, records.NewInMemoryStore(), zap.NewNop())
	assert.Error(t, err)

	m, err := NewManager(&Config{CallbackURL: "http://x", Schedule: "not a schedule"}, records.NewInMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	assert.Error(t, m.Start())

	m, err = NewManager(&Config{CallbackURL: "http://x"}, records.NewInMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	m.Stop()
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file disables", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Nil(t, cfg)

		cfg, err = LoadConfig("")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		path := filepath.Join(dir, "digest.yaml")
		require.NoError(t, os.WriteFile(path, []byte("callback_url: http://hooks.local/digest\ntimeout: 5s\n"), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "http://hooks.local/digest", cfg.CallbackURL)
		assert.Equal(t, DEFAULT_SCHEDULE, cfg.Schedule)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, reminders.PriorityLow, cfg.floor())
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schedule: '@daily'\n"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
