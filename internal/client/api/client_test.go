package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passdoo/desktop-cli/internal/client/session"
	"github.com/passdoo/desktop-cli/internal/logging"
)

// memRepo is an in-memory settings repository for wiring a session store.
type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore(newMemRepo())
	return NewClient(srv.URL, "2.0.0", store, logging.NewNop(), opts...), store
}

func TestClient_AttachesHeaders(t *testing.T) {
	var got http.Header
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(map[string]any{"valid": true})
	}))
	ctx := context.Background()

	_, err := c.Validate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "desktop-app", got.Get("X-Client-Type"))
	assert.Equal(t, "2.0.0", got.Get("X-Client-Version"))
	assert.Empty(t, got.Get("Authorization"))

	require.NoError(t, store.Save(ctx, session.Session{Token: "tok"}))
	_, err = c.Validate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
}

func TestClient_VersionGateClearsSession(t *testing.T) {
	var upgrades atomic.Int32
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUpgradeRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"download_url":    "/passdoo/downloads",
			"current_version": "2.0.0",
			"min_version":     "3.1.0",
		})
	}), WithUpgradeHandler(func(*UpgradeRequiredError) { upgrades.Add(1) }))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, session.Session{Token: "tok"}))

	_, err := c.ListPasswords(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpgradeRequired)

	var ue *UpgradeRequiredError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "/passdoo/downloads", ue.DownloadURL)
	assert.Equal(t, "3.1.0", ue.MinVersion)

	assert.False(t, store.Current().Authenticated())
	assert.Equal(t, int32(1), upgrades.Load())
}

func TestClient_VersionGateIdempotentUnderConcurrency(t *testing.T) {
	var upgrades atomic.Int32
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUpgradeRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"min_version": "3.0.0"})
	}), WithUpgradeHandler(func(*UpgradeRequiredError) { upgrades.Add(1) }))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, session.Session{Token: "tok"}))

	const n = 8
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListPasswords(ctx)
			assert.ErrorIs(t, err, ErrUpgradeRequired)
		}()
	}
	wg.Wait()

	assert.False(t, store.Current().Authenticated())
	assert.Equal(t, int32(1), upgrades.Load(), "logout side effects must run once")
}

func TestClient_EnvelopeErrorSurfacedVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "quota esaurita",
		})
	}))

	_, err := c.ListPasswords(context.Background())
	require.Error(t, err)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "quota esaurita", se.Message)
}

func TestClient_NonJSONFailurePassesThrough(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := c.ListPasswords(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_EndpointPaths(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	ctx := context.Background()

	require.NoError(t, c.DeletePassword(ctx, 42))
	assert.Equal(t, "/passdoo/api/extension/password/42", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)

	_, err := c.ListClientGroups(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "/passdoo/api/extension/client/7/groups", gotPath)
}
