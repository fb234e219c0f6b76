// Package cli provides the interactive Passdoo desktop command-line client.
//
// It wires configuration, local storage, the portal API client, and an
// interactive REPL. Typical flow: validate the stored session (or run the
// device-code login), load the vault, and execute user commands.
//
// Key features:
//   - Device-code login with browser hand-off and clipboard/manual fallback
//   - Grouped password list with ownership tabs, client filter, and search
//   - Show a record's secret with automatic re-masking
//   - Create, edit, and delete records; reassign client and category
//   - Per-record access editor (share type, user and group grants)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
