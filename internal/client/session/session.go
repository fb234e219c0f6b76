// Package session persists the authenticated identity across restarts.
// Only the session survives a process restart; every other record the
// client shows is refetched from the portal.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/passdoo/desktop-cli/internal/client/storage"
)

// settingsKey is the single settings entry holding the session blob.
const settingsKey = "session"

// Session is the persisted identity. An empty Token means logged out;
// token and identity are always written and cleared together.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool { return s.Token != "" }

// DisplayName prefers the user's name and falls back to the email.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Store owns the current session. The auth flow is the only writer; the
// API gateway and startup validation read concurrently, so access is
// guarded by a mutex.
type Store struct {
	mu   sync.Mutex
	repo storage.SettingsRepository
	cur  Session
}

func NewStore(repo storage.SettingsRepository) *Store {
	return &Store{repo: repo}
}

// Load restores the persisted session. Absent or malformed data yields an
// empty session and no error: a corrupt blob just means logging in again.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = Session{}
	raw, err := s.repo.Get(ctx, settingsKey)
	if err != nil || len(raw) == 0 {
		return
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return
	}
	s.cur = sess
}

// Current returns a copy of the in-memory session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Token
}

// Save replaces the session in memory and on disk in a single write.
func (s *Store) Save(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, settingsKey, raw); err != nil {
		return err
	}
	s.cur = sess
	return nil
}

// Clear wipes the session in memory and on disk. Used on logout and on a
// forced version upgrade.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Invalidate clears the session only if one is currently authenticated and
// reports whether it acted. Concurrent callers (several in-flight requests
// all hitting the version gate at once) observe exactly one logout.
func (s *Store) Invalidate(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cur.Authenticated() {
		return false
	}
	_ = s.clearLocked(ctx)
	return true
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.cur = Session{}
	return s.repo.Delete(ctx, settingsKey)
}
