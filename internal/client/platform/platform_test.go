package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passdoo/desktop-cli/internal/logging"
)

func TestRunChain_FirstSuccessWins(t *testing.T) {
	var order []string
	name, err := runChain(context.Background(), logging.NewNop(), "x", []Strategy{
		{Name: "a", Run: func(context.Context, string) error {
			order = append(order, "a")
			return errors.New("nope")
		}},
		{Name: "b", Run: func(context.Context, string) error {
			order = append(order, "b")
			return nil
		}},
		{Name: "c", Run: func(context.Context, string) error {
			order = append(order, "c")
			return nil
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "b", name)
	assert.Equal(t, []string{"a", "b"}, order, "later tiers must not run after a success")
}

func TestRunChain_Exhausted(t *testing.T) {
	_, err := runChain(context.Background(), logging.NewNop(), "x", []Strategy{
		{Name: "a", Run: func(context.Context, string) error { return errors.New("no") }},
	})
	assert.ErrorIs(t, err, ErrChainExhausted)
}

func TestClipboard_OSC52Fallback(t *testing.T) {
	var buf bytes.Buffer
	c := NewClipboard(logging.NewNop())
	c.out = &buf
	c.strategies[0].Run = func(context.Context, string) error {
		return errors.New("no native clipboard")
	}

	require.NoError(t, c.Write(context.Background(), "segreto"))
	assert.Contains(t, buf.String(), "\x1b]52;c;")
	assert.Contains(t, buf.String(), "c2VncmV0bw==") // base64("segreto")
}

func TestOpener_Outcomes(t *testing.T) {
	clip := NewClipboard(logging.NewNop())
	clip.strategies = []Strategy{{Name: "native", Run: func(context.Context, string) error { return nil }}}

	o := NewOpener(logging.NewNop(), clip)
	o.openBrowser = func(string) error { return nil }
	assert.Equal(t, OutcomeOpened, o.Open(context.Background(), "https://example.it"))

	o.openBrowser = func(string) error { return errors.New("no display") }
	assert.Equal(t, OutcomeCopied, o.Open(context.Background(), "https://example.it"))

	clip.strategies = []Strategy{{Name: "native", Run: func(context.Context, string) error { return errors.New("no") }}}
	assert.Equal(t, OutcomeManual, o.Open(context.Background(), "https://example.it"))
}

func TestIPResolver_FirstSuccessShortCircuits(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(bad.Close)

	var hits int
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("203.0.113.9\n"))
	}))
	t.Cleanup(good.Close)

	never := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("later service must not be queried after a success")
	}))
	t.Cleanup(never.Close)

	r := NewIPResolver(logging.NewNop())
	r.services = []string{bad.URL, good.URL, never.URL}

	assert.Equal(t, "203.0.113.9", r.PublicIP(context.Background()))
	assert.Equal(t, 1, hits)
}

func TestIPResolver_GarbageRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not an ip</html>"))
	}))
	t.Cleanup(srv.Close)

	r := NewIPResolver(logging.NewNop())
	r.services = []string{srv.URL}

	assert.Empty(t, r.PublicIP(context.Background()))
}

type memSettings map[string][]byte

func (m memSettings) Get(_ context.Context, k string) ([]byte, error) { return m[k], nil }
func (m memSettings) Set(_ context.Context, k string, v []byte) error { m[k] = v; return nil }
func (m memSettings) Delete(_ context.Context, k string) error        { delete(m, k); return nil }

func TestDescribeDevice_StableInstallID(t *testing.T) {
	settings := memSettings{}
	ctx := context.Background()

	var first, second DeviceInfo
	require.NoError(t, json.Unmarshal([]byte(DescribeDevice(ctx, settings)), &first))
	require.NoError(t, json.Unmarshal([]byte(DescribeDevice(ctx, settings)), &second))

	assert.NotEmpty(t, first.DeviceID)
	assert.Equal(t, first.DeviceID, second.DeviceID)
	assert.NotEmpty(t, first.OS)
	assert.NotEmpty(t, first.Arch)
}
