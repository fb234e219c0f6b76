package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/passdoo/desktop-cli/internal/buildinfo"
	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/auth"
	"github.com/passdoo/desktop-cli/internal/client/config"
	"github.com/passdoo/desktop-cli/internal/client/models"
	"github.com/passdoo/desktop-cli/internal/client/platform"
	"github.com/passdoo/desktop-cli/internal/client/session"
	"github.com/passdoo/desktop-cli/internal/client/storage"
	"github.com/passdoo/desktop-cli/internal/client/vault"
	"github.com/passdoo/desktop-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired client and the REPL's view state. The record cache
// and filter are only touched from the REPL goroutine, so no locking.
type App struct {
	config *config.Config
	log    logging.Logger
	store  *session.Store
	api    *api.Client
	flow   *auth.Flow
	clip   *platform.Clipboard
	opener *platform.Opener

	records    []models.PasswordRecord
	clients    []models.Client
	categories []models.Category
	filter     vault.Filter

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	settings := storage.NewSQLiteSettingsRepository(db)
	store := session.NewStore(settings)
	store.Load(ctx)

	clip := platform.NewClipboard(log)
	opener := platform.NewOpener(log, clip)
	ip := platform.NewIPResolver(log)

	a := &App{
		config: cfg,
		log:    log,
		store:  store,
		clip:   clip,
		opener: opener,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.api = api.NewClient(cfg.BaseURL, buildinfo.Version(), store, log,
		api.WithUpgradeHandler(a.onUpgradeRequired))

	a.flow = auth.NewFlow(a.api, store, cfg.DeviceName, log,
		auth.WithPollCadence(cfg.PollInterval, cfg.PollMaxAttempts),
		auth.WithDeviceInfo(func(ctx context.Context) string {
			return platform.DescribeDevice(ctx, settings)
		}),
		auth.WithPublicIP(ip.PublicIP),
	)

	return a, nil
}

// onUpgradeRequired runs after the session has already been invalidated
// by the API layer. It only informs the user; the next command will find
// the client logged out.
func (a *App) onUpgradeRequired(e *api.UpgradeRequiredError) {
	fmt.Fprintln(a.out, "This client version is no longer supported. You have been logged out.")
	if e.DownloadURL != "" {
		fmt.Fprintf(a.out, "Download the latest version: %s\n", e.DownloadURL)
	}
	a.records = nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().Authenticated()
}

func (a *App) getStatus() string {
	s := a.store.Current()
	if !s.Authenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", s.DisplayName())
}

// Run validates any stored session, then hands control to the REPL.
// It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Passdoo Desktop CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		ok, err := a.api.Validate(ctx)
		switch {
		case err != nil:
			a.log.Warn(ctx, "session validation failed, keeping stored session", "error", err)
		case !ok:
			fmt.Fprintln(a.out, "Stored session has expired, please log in again.")
			if err := a.store.Clear(ctx); err != nil {
				a.log.Warn(ctx, "error clearing session", "error", err)
			}
		default:
			fmt.Fprintf(a.out, "Logged in as %s\n", a.store.Current().DisplayName())
			if err := a.Refresh(ctx); err != nil {
				a.log.Warn(ctx, "initial refresh failed", "error", err)
			}
		}
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// About prints client and portal identification.
func (a *App) About(ctx context.Context) error {
	fmt.Fprintf(a.out, "Passdoo Desktop CLI, version %s\n", buildinfo.Version())
	fmt.Fprintf(a.out, "Portal: %s\n", a.api.BaseURL())
	return nil
}
