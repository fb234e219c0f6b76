// Package auth implements the device-code login flow: generate a pairing
// code, register it with the portal, and poll until the user authorizes the
// device in a browser, the code expires, or the attempt ceiling is reached.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/session"
	"github.com/passdoo/desktop-cli/internal/logging"
)

// State is the flow's observable position in its lifecycle.
type State string

const (
	StateIdle          State = "idle"
	StateCodeRequested State = "code_requested"
	StateAwaitingUser  State = "awaiting_user"
	StatePolling       State = "polling"
	StateAuthenticated State = "authenticated"
	StateExpired       State = "expired"
	StateTimedOut      State = "timed_out"
	StateFailed        State = "failed"
)

var (
	// ErrCodeExpired: the portal no longer knows the code. The user must
	// restart the login with a fresh code.
	ErrCodeExpired = errors.New("device code expired")

	// ErrTimeout: the attempt ceiling was reached without a decision.
	ErrTimeout = errors.New("authentication timed out")

	// ErrCanceled: a newer login attempt or a logout canceled the loop.
	ErrCanceled = errors.New("login canceled")
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxAttempts  = 60 // 5-minute ceiling at the default interval
)

// Flow orchestrates device-code logins. At most one poll loop is active at
// a time: starting a new attempt cancels the previous one, as does Cancel
// (called on logout and teardown).
type Flow struct {
	api        *api.Client
	store      *session.Store
	log        logging.Logger
	deviceName string

	interval    time.Duration
	maxAttempts int

	// deviceInfo and publicIP enrich the registration payload. Both are
	// best-effort; empty results are omitted from the request.
	deviceInfo func(ctx context.Context) string
	publicIP   func(ctx context.Context) string

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithPollCadence overrides the poll interval and attempt ceiling (tests).
func WithPollCadence(interval time.Duration, maxAttempts int) FlowOption {
	return func(f *Flow) {
		f.interval = interval
		f.maxAttempts = maxAttempts
	}
}

// WithDeviceInfo sets the provider for the device_info registration field.
func WithDeviceInfo(fn func(ctx context.Context) string) FlowOption {
	return func(f *Flow) { f.deviceInfo = fn }
}

// WithPublicIP sets the provider for the ip_address registration field.
func WithPublicIP(fn func(ctx context.Context) string) FlowOption {
	return func(f *Flow) { f.publicIP = fn }
}

func NewFlow(apiClient *api.Client, store *session.Store, deviceName string, log logging.Logger, opts ...FlowOption) *Flow {
	f := &Flow{
		api:         apiClient,
		store:       store,
		log:         log,
		deviceName:  deviceName,
		interval:    defaultPollInterval,
		maxAttempts: defaultMaxAttempts,
		state:       StateIdle,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// State returns the flow's current lifecycle position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Attempt is one registered login attempt: the pairing code to show the
// user and the page where it must be entered.
type Attempt struct {
	Code    string
	AuthURL string

	flow *Flow
	ctx  context.Context
}

// Start generates and registers a fresh pairing code. Any previous attempt's
// poll loop is canceled. The code is single-use: once the returned attempt's
// Wait finishes, a new login starts over with Start.
func (f *Flow) Start(ctx context.Context) (*Attempt, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	pollCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.state = StateCodeRequested
	f.mu.Unlock()

	code := GenerateDeviceCode()

	req := api.InitAuthRequest{DeviceCode: code, DeviceName: f.deviceName}
	if f.deviceInfo != nil {
		req.DeviceInfo = f.deviceInfo(ctx)
	}
	if f.publicIP != nil {
		req.IPAddress = f.publicIP(ctx)
	}

	if err := f.api.InitAuth(ctx, req); err != nil {
		f.setState(StateFailed)
		return nil, err
	}

	f.setState(StateAwaitingUser)
	f.log.Info(ctx, "device code registered", "code", code)
	return &Attempt{Code: code, AuthURL: f.api.AuthCallbackURL(), flow: f, ctx: pollCtx}, nil
}

// Cancel stops any active poll loop. Safe to call at any time.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.state == StatePolling || f.state == StateAwaitingUser || f.state == StateCodeRequested {
		f.state = StateIdle
	}
}

// Wait polls the portal until the attempt resolves. Exactly one request is
// in flight at a time; transient failures consume an attempt and the loop
// continues. Terminal outcomes:
//
//   - authenticated: the session is persisted and returned;
//   - expired / not_found: ErrCodeExpired;
//   - attempt ceiling reached: ErrTimeout;
//   - canceled (new login, logout, teardown): ErrCanceled;
//   - version gate: the api error, unretried.
func (a *Attempt) Wait() (session.Session, error) {
	f := a.flow
	ctx := a.ctx
	f.setState(StatePolling)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			f.setState(StateIdle)
			return session.Session{}, ErrCanceled
		case <-ticker.C:
		}

		res, err := f.api.CheckAuth(ctx, a.Code)
		if err != nil {
			if errors.Is(err, api.ErrUpgradeRequired) {
				f.setState(StateFailed)
				return session.Session{}, err
			}
			if ctx.Err() != nil {
				f.setState(StateIdle)
				return session.Session{}, ErrCanceled
			}
			// A single failed poll is not a decision; keep waiting.
			f.log.Debug(ctx, "poll attempt failed", "attempt", attempt, "err", err)
			continue
		}

		switch {
		case res.Success && res.Authenticated:
			sess := session.Session{Token: res.Token, Email: res.Email, Name: res.Name}
			if sess.Name == "" {
				sess.Name = res.Email
			}
			if err := f.store.Save(ctx, sess); err != nil {
				f.setState(StateFailed)
				return session.Session{}, err
			}
			f.setState(StateAuthenticated)
			f.log.Info(ctx, "authenticated", "email", sess.Email)
			return sess, nil

		case res.Status == "pending":
			// User has not finished in the browser yet.

		case res.Status == "invalid":
			// Code not registered server-side yet; distinct from expiry.
			f.log.Debug(ctx, "code not yet registered", "attempt", attempt)

		case res.Status == "expired" || res.Status == "not_found":
			f.setState(StateExpired)
			return session.Session{}, ErrCodeExpired
		}
	}

	f.setState(StateTimedOut)
	return session.Session{}, ErrTimeout
}
