package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/passdoo/desktop-cli/internal/client/vault"
)

// Refresh reloads the password list and the reference data (clients,
// categories) from the portal. The cached copy is replaced wholesale.
func (a *App) Refresh(ctx context.Context) error {
	records, err := a.api.ListPasswords(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load passwords: %s\n", err.Error())
		return err
	}

	clients, err := a.api.ListClients(ctx)
	if err != nil {
		a.log.Warn(ctx, "error loading clients", "error", err)
	}
	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		a.log.Warn(ctx, "error loading categories", "error", err)
	}

	a.records = records
	a.clients = clients
	a.categories = categories

	fmt.Fprintf(a.out, "Loaded %d passwords.\n", len(records))
	return nil
}

// List prints the cached records grouped by client and category, honoring
// the current tab, search, and client filter.
func (a *App) List(ctx context.Context) error {
	res := vault.GroupAndFilter(a.records, a.filter)

	a.printFilterHeader()

	if res.Total == 0 {
		fmt.Fprintln(a.out, "No passwords match.")
		return nil
	}

	if res.Flat != nil {
		a.printCategoryGroups(res.Flat, "")
	} else {
		for _, cg := range res.ClientGroups {
			fmt.Fprintf(a.out, "%s (%d)\n", cg.Name, cg.Total)
			a.printCategoryGroups(cg.Categories, "  ")
		}
		if len(res.Unfiled) > 0 {
			fmt.Fprintln(a.out, "No client")
			a.printCategoryGroups(res.Unfiled, "  ")
		}
	}

	fmt.Fprintf(a.out, "%d password(s)\n", res.Total)
	return nil
}

func (a *App) printFilterHeader() {
	tab := a.filter.Tab
	if tab == "" {
		tab = vault.TabAll
	}
	fmt.Fprintf(a.out, "Tab: %s", tab)
	if a.filter.Search != "" {
		fmt.Fprintf(a.out, "  Search: %q", a.filter.Search)
	}
	if a.filter.ClientID != nil {
		fmt.Fprintf(a.out, "  Client: %s", a.clientName(*a.filter.ClientID))
	}
	fmt.Fprintln(a.out)
}

func (a *App) printCategoryGroups(groups []vault.CategoryGroup, indent string) {
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s%s\n", indent, g.Name)
		for _, r := range g.Records {
			line := fmt.Sprintf("%s  [%d] %s", indent, r.ID, r.Name)
			if r.Username != "" {
				line += "  " + r.Username
			}
			if !r.IsOwner {
				line += "  (shared with you)"
			}
			fmt.Fprintln(a.out, line)
		}
	}
}

func (a *App) clientName(id int64) string {
	for _, c := range a.clients {
		if c.ID == id {
			return c.Name
		}
	}
	return strconv.FormatInt(id, 10)
}

// SetTab switches the ownership view and re-renders the list.
func (a *App) SetTab(ctx context.Context, name string) error {
	switch vault.Tab(name) {
	case vault.TabAll, vault.TabPersonal, vault.TabShared:
		a.filter.Tab = vault.Tab(name)
	default:
		fmt.Fprintln(a.out, "Unknown tab. Use one of: all, personal, shared")
		return nil
	}
	return a.List(ctx)
}

// SetSearch updates the search term; an empty argument clears it.
func (a *App) SetSearch(ctx context.Context, term string) error {
	a.filter.Search = term
	return a.List(ctx)
}

// SetClient filters the list to a single client by id. An empty argument or
// "clear" removes the filter.
func (a *App) SetClient(ctx context.Context, arg string) error {
	if arg == "" || arg == "clear" {
		a.filter.ClientID = nil
		return a.List(ctx)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: client <id> (see ids with 'list'), or 'client clear'")
		return nil
	}
	a.filter.ClientID = &id
	return a.List(ctx)
}
