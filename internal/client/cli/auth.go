package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/auth"
	"github.com/passdoo/desktop-cli/internal/client/platform"
	"github.com/passdoo/desktop-cli/internal/client/vault"
)

// Login runs the device-code pairing flow.
//
// It registers a fresh pairing code with the portal, shows it to the user,
// opens the confirmation page in the browser (falling back to clipboard or
// a printed address), and blocks polling until the portal reports the code
// as confirmed, expired, or the poll ceiling is reached. On success the
// session is already persisted by the flow; the vault is loaded right away.
func (a *App) Login(ctx context.Context) error {
	attempt, err := a.flow.Start(ctx)
	if err != nil {
		var srvErr *api.ServerError
		if errors.As(err, &srvErr) {
			fmt.Fprintf(a.out, "Login refused by the portal: %s\n", srvErr.Message)
		} else {
			fmt.Fprintf(a.out, "Could not start login: %s\n", err.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Your pairing code: %s\n", attempt.Code)

	switch a.opener.Open(ctx, attempt.AuthURL) {
	case platform.OutcomeOpened:
		fmt.Fprintln(a.out, "A browser window has been opened. Enter the code there to confirm this device.")
	case platform.OutcomeCopied:
		fmt.Fprintln(a.out, "Could not open a browser. The login page address has been copied to your clipboard.")
	default:
		fmt.Fprintf(a.out, "Open this page in your browser and enter the code:\n  %s\n", attempt.AuthURL)
	}

	fmt.Fprintln(a.out, "Waiting for confirmation...")

	sess, err := attempt.Wait()
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCodeExpired):
			fmt.Fprintln(a.out, "The pairing code has expired. Run 'login' to get a new one.")
		case errors.Is(err, auth.ErrTimeout):
			fmt.Fprintln(a.out, "No confirmation received in time. Run 'login' to try again.")
		case errors.Is(err, auth.ErrCanceled):
			fmt.Fprintln(a.out, "Login canceled.")
		case errors.Is(err, api.ErrUpgradeRequired):
			// onUpgradeRequired has already informed the user
		default:
			fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", sess.DisplayName())
	return a.Refresh(ctx)
}

// Logout cancels any pending login attempt, tells the portal to revoke the
// token (best effort), and clears the local session and cached records.
func (a *App) Logout(ctx context.Context) error {
	a.flow.Cancel()

	if a.isLoggedIn() {
		if err := a.api.Logout(ctx); err != nil {
			a.log.Warn(ctx, "server logout failed", "error", err)
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.records = nil
	a.clients = nil
	a.categories = nil
	a.filter = vault.Filter{}

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
