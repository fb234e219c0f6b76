package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/models"
	"github.com/passdoo/desktop-cli/internal/client/platform"
	"github.com/passdoo/desktop-cli/internal/client/session"
	"github.com/passdoo/desktop-cli/internal/logging"
)

// memRepo is an in-memory storage.SettingsRepository for tests.
type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}
func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func intp(v int64) *int64 { return &v }

func fixtureRecords() []models.PasswordRecord {
	return []models.PasswordRecord{
		{ID: 1, Name: "Gmail", Username: "mario@acme.it", Category: "email", PartnerID: intp(10), PartnerName: "Acme", IsOwner: true},
		{ID: 2, Name: "Portale banca", Category: "banking", IsOwner: true},
		{ID: 3, Name: "Router ufficio", Category: "web", PartnerID: intp(10), PartnerName: "Acme", IsOwner: false, AccessLevel: "read"},
	}
}

func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()

	log := logging.NewNop()
	store := session.NewStore(newMemRepo())
	require.NoError(t, store.Save(context.Background(), session.Session{Token: "tok", Email: "mario@acme.it"}))

	var buf bytes.Buffer
	a := &App{
		log:     log,
		store:   store,
		clip:    platform.NewClipboard(log),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &buf,
		records: fixtureRecords(),
		clients: []models.Client{{ID: 10, Name: "Acme"}},
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		a.api = api.NewClient(srv.URL, "1.0.0", store, log)
	}
	return a, &buf
}

func TestList_GroupedOutput(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.List(context.Background()))
	out := buf.String()

	assert.Contains(t, out, "Acme (2)")
	assert.Contains(t, out, "No client")
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "Siti Web")
	assert.Contains(t, out, "[1] Gmail  mario@acme.it")
	assert.Contains(t, out, "(shared with you)")
	assert.Contains(t, out, "3 password(s)")
}

func TestSetTab(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.SetTab(context.Background(), "personal"))
	out := buf.String()
	assert.Contains(t, out, "Tab: personal")
	assert.NotContains(t, out, "Router ufficio")
	assert.Contains(t, out, "2 password(s)")

	buf.Reset()
	require.NoError(t, a.SetTab(context.Background(), "bogus"))
	assert.Contains(t, buf.String(), "Unknown tab")
	assert.Equal(t, "personal", string(a.filter.Tab))
}

func TestSetClient_FilterAndClear(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.SetClient(context.Background(), "10"))
	out := buf.String()
	assert.Contains(t, out, "Client: Acme")
	// client filter flattens the tree: no client headings
	assert.NotContains(t, out, "Acme (2)")
	assert.Contains(t, out, "2 password(s)")

	buf.Reset()
	require.NoError(t, a.SetClient(context.Background(), "clear"))
	assert.Contains(t, buf.String(), "Acme (2)")
}

func TestSetSearch(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.SetSearch(context.Background(), "banca"))
	out := buf.String()
	assert.Contains(t, out, `Search: "banca"`)
	assert.Contains(t, out, "Portale banca")
	assert.NotContains(t, out, "Gmail")

	buf.Reset()
	require.NoError(t, a.SetSearch(context.Background(), ""))
	assert.Contains(t, buf.String(), "3 password(s)")
}

func TestShow_FetchesSecretAndMasks(t *testing.T) {
	origDelay := maskDelay
	maskDelay = 0
	t.Cleanup(func() { maskDelay = origDelay })

	mux := http.NewServeMux()
	mux.HandleFunc("/passdoo/api/extension/password/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"password":{"id":1,"password_plain":"s3gretissimo"}}`)
	})

	a, buf := newTestApp(t, mux)

	require.NoError(t, a.Show(context.Background(), "1"))
	out := buf.String()

	assert.Contains(t, out, "Name: Gmail")
	assert.Contains(t, out, "Category: Email")
	assert.Contains(t, out, "Client: Acme")
	assert.Contains(t, out, "Password: s3gretissimo")
	assert.Contains(t, out, "\rPassword: ********")
}

func TestShow_UnknownID(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.Show(context.Background(), "999"))
	assert.Contains(t, buf.String(), "No such record")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/passdoo/api/extension/password/2", func(w http.ResponseWriter, r *http.Request) {
		called = true
		fmt.Fprint(w, `{"success":true}`)
	})

	a, buf := newTestApp(t, mux)
	a.reader = bufio.NewReader(strings.NewReader("n\n"))

	require.NoError(t, a.Delete(context.Background(), "2"))
	assert.Contains(t, buf.String(), "Canceled.")
	assert.False(t, called)
}

func TestDelete_SharedWithoutPermission(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.Delete(context.Background(), "3"))
	assert.Contains(t, buf.String(), "permission")
}

func TestEdit_ReadOnlyRecord(t *testing.T) {
	a, buf := newTestApp(t, nil)

	require.NoError(t, a.Edit(context.Background(), "3"))
	assert.Contains(t, buf.String(), "write access")
}

func TestFieldUpdate(t *testing.T) {
	tests := []struct {
		answer string
		want   any
		set    bool
	}{
		{"", nil, false},
		{"-", nil, true},
		{"new value", "new value", true},
	}
	for _, tc := range tests {
		got, set := fieldUpdate(tc.answer)
		assert.Equal(t, tc.set, set, tc.answer)
		assert.Equal(t, tc.want, got, tc.answer)
	}
}

func TestIDUpdate(t *testing.T) {
	tests := []struct {
		answer string
		want   any
		set    bool
	}{
		{"", nil, false},
		{"-", nil, true},
		{"15", int64(15), true},
		{"abc", nil, false},
	}
	for _, tc := range tests {
		got, set := idUpdate(tc.answer)
		assert.Equal(t, tc.set, set, tc.answer)
		assert.Equal(t, tc.want, got, tc.answer)
	}
}
