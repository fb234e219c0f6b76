package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/vault"
	"github.com/passdoo/desktop-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Add collects the fields of a new record interactively and stores it on
// the portal. An empty password prompt generates one.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "A name is required.")
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username (optional)", a.out)
	if err != nil {
		return err
	}

	pw, err := getPassword("Enter password (empty to generate)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	password := string(pw)
	if password == "" {
		password = generatePassword(defaultPasswordLength)
		fmt.Fprintf(a.out, "Generated password: %s\n", password)
	}

	uri, err := getSimpleText(a.reader, "Enter URL (optional)", a.out)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	req := api.CreatePasswordRequest{
		Name:        name,
		Username:    username,
		Password:    password,
		URI:         uri,
		Description: description,
	}

	req.PartnerID, err = a.promptClient(ctx)
	if err != nil {
		return err
	}
	req.CategoryID, req.Category, err = a.promptCategory(ctx)
	if err != nil {
		return err
	}

	if err := a.api.CreatePassword(ctx, req); err != nil {
		fmt.Fprintf(a.out, "Could not save: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return a.Refresh(ctx)
}

// promptClient lists the known clients and reads an optional selection.
func (a *App) promptClient(ctx context.Context) (*int64, error) {
	if len(a.clients) == 0 {
		return nil, nil
	}
	for _, c := range a.clients {
		fmt.Fprintf(a.out, "  [%d] %s\n", c.ID, c.Name)
	}
	answer, err := getSimpleText(a.reader, "Client id (empty for none)", a.out)
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Not a number, leaving client unset.")
		return nil, nil
	}
	return &id, nil
}

// promptCategory lists the known categories and reads an optional selection.
// A non-numeric answer is sent as a free-form category key.
func (a *App) promptCategory(ctx context.Context) (*int64, *string, error) {
	for _, c := range a.categories {
		fmt.Fprintf(a.out, "  [%d] %s\n", c.ID, c.DisplayName())
	}
	answer, err := getSimpleText(a.reader, "Category id (empty for none)", a.out)
	if err != nil {
		return nil, nil, err
	}
	if answer == "" {
		return nil, nil, nil
	}
	if id, err := strconv.ParseInt(answer, 10, 64); err == nil {
		return &id, nil, nil
	}
	key := answer
	return nil, &key, nil
}

// Edit updates one record field by field. Empty input keeps the current
// value, a single "-" clears it. Client and category can be reassigned the
// same way.
func (a *App) Edit(ctx context.Context, arg string) error {
	rec, ok := a.findRecord(arg)
	if !ok {
		fmt.Fprintln(a.out, "No such record. See ids with 'list', or 'refresh' first.")
		return nil
	}
	if !rec.Editable() {
		fmt.Fprintln(a.out, "You do not have write access to this record.")
		return nil
	}

	fmt.Fprintln(a.out, "Empty input keeps the current value, '-' clears it.")

	fields := map[string]any{}

	prompts := []struct {
		label   string
		current string
		field   string
	}{
		{"Name", rec.Name, "name"},
		{"Username", rec.Username, "username"},
		{"URL", rec.URI, "uri"},
		{"Description", rec.Description, "description"},
	}
	for _, p := range prompts {
		answer, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", p.label, p.current), a.out)
		if err != nil {
			return err
		}
		if v, set := fieldUpdate(answer); set {
			fields[p.field] = v
		}
	}

	pw, err := getPassword("New password (empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if len(pw) > 0 {
		fields["password"] = string(pw)
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Client id [%s]", a.currentClientLabel(rec.PartnerID)), a.out)
	if err != nil {
		return err
	}
	if v, set := idUpdate(answer); set {
		fields["partner_id"] = v
	}

	answer, err = getSimpleText(a.reader, fmt.Sprintf("Category id [%s]", vault.CategoryDisplayName(rec.Category)), a.out)
	if err != nil {
		return err
	}
	if v, set := idUpdate(answer); set {
		fields["category_id"] = v
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if err := a.api.UpdatePassword(ctx, rec.ID, fields); err != nil {
		fmt.Fprintf(a.out, "Could not update: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Updated.")
	return a.Refresh(ctx)
}

// fieldUpdate maps the empty/keep and "-"/clear convention onto a partial
// update value. A cleared field is sent as JSON null.
func fieldUpdate(answer string) (any, bool) {
	switch strings.TrimSpace(answer) {
	case "":
		return nil, false
	case "-":
		return nil, true
	default:
		return answer, true
	}
}

// idUpdate is fieldUpdate for numeric references. Unparseable input is
// treated as "keep".
func idUpdate(answer string) (any, bool) {
	switch strings.TrimSpace(answer) {
	case "":
		return nil, false
	case "-":
		return nil, true
	default:
		id, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
		if err != nil {
			return nil, false
		}
		return id, true
	}
}

func (a *App) currentClientLabel(id *int64) string {
	if id == nil {
		return "none"
	}
	return a.clientName(*id)
}

// Delete removes one record after confirmation.
func (a *App) Delete(ctx context.Context, arg string) error {
	rec, ok := a.findRecord(arg)
	if !ok {
		fmt.Fprintln(a.out, "No such record. See ids with 'list', or 'refresh' first.")
		return nil
	}
	if !rec.CanDelete && !rec.IsOwner {
		fmt.Fprintln(a.out, "You do not have permission to delete this record.")
		return nil
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", rec.Name), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Canceled.")
		return nil
	}

	if err := a.api.DeletePassword(ctx, rec.ID); err != nil {
		fmt.Fprintf(a.out, "Could not delete: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return a.Refresh(ctx)
}
