package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/passdoo/desktop-cli/internal/client/models"
	"github.com/passdoo/desktop-cli/internal/client/vault"
)

// maskDelay is how long a revealed secret stays on screen before it is
// overwritten. Tests set it to zero.
var maskDelay = 5 * time.Second

const masked = "********"

// Show displays one record. The plaintext is fetched lazily from the
// single-record endpoint, copied to the clipboard, shown briefly, and then
// overwritten on screen.
func (a *App) Show(ctx context.Context, arg string) error {
	rec, ok := a.findRecord(arg)
	if !ok {
		fmt.Fprintln(a.out, "No such record. See ids with 'list', or 'refresh' first.")
		return nil
	}

	fmt.Fprintf(a.out, "Name: %s\n", rec.Name)
	if rec.Username != "" {
		fmt.Fprintf(a.out, "Username: %s\n", rec.Username)
	}
	if rec.URI != "" {
		fmt.Fprintf(a.out, "URL: %s\n", rec.URI)
	}
	fmt.Fprintf(a.out, "Category: %s\n", vault.CategoryDisplayName(rec.Category))
	if rec.PartnerName != "" {
		fmt.Fprintf(a.out, "Client: %s\n", rec.PartnerName)
	}
	if rec.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", rec.Description)
	}
	if !rec.IsOwner {
		fmt.Fprintf(a.out, "Access: %s\n", rec.AccessLevel)
	}

	secret, err := a.api.GetPasswordSecret(ctx, rec.ID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not fetch the password: %s\n", err.Error())
		return err
	}

	if err := a.clip.Write(ctx, secret); err == nil {
		fmt.Fprintln(a.out, "Password copied to clipboard.")
	}

	a.reveal(secret)
	return nil
}

// reveal prints the secret, waits, then overwrites the line with a mask.
// The pad keeps long secrets from leaving trailing characters behind.
func (a *App) reveal(secret string) {
	fmt.Fprintf(a.out, "Password: %s", secret)
	time.Sleep(maskDelay)
	pad := ""
	if n := len(secret) - len(masked); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(a.out, "\rPassword: %s%s\n", masked, pad)
}

// findRecord resolves a user-typed id against the cached list.
func (a *App) findRecord(arg string) (models.PasswordRecord, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return models.PasswordRecord{}, false
	}
	for _, r := range a.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.PasswordRecord{}, false
}
