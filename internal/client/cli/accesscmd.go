package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/passdoo/desktop-cli/internal/client/access"
	"github.com/passdoo/desktop-cli/internal/client/models"
)

// Access opens the sharing editor for one record. Changes are staged
// locally and sent as a single batch on 'save'.
func (a *App) Access(ctx context.Context, arg string) error {
	rec, ok := a.findRecord(arg)
	if !ok {
		fmt.Fprintln(a.out, "No such record. See ids with 'list', or 'refresh' first.")
		return nil
	}

	view, err := access.Load(ctx, a.api, rec.ID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load access settings: %s\n", err.Error())
		return err
	}

	a.printAccessView(view)

	if !view.CanManageAccess {
		fmt.Fprintln(a.out, "You cannot change the sharing settings of this record.")
		return nil
	}

	editor := access.NewEditor(rec.ID, view)
	fmt.Fprintln(a.out, "Commands: type, grant-user, revoke-user, grant-group, revoke-group, users, groups, save, cancel")

	for {
		fmt.Fprint(a.out, "access> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "type":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: type <private|custom|work>")
				continue
			}
			st := models.ParseShareType(parts[1])
			editor.SetShareType(st)
			if st == models.SharePrivate {
				fmt.Fprintln(a.out, "Share type: private (all grants removed)")
			} else {
				fmt.Fprintf(a.out, "Share type: %s\n", st)
			}

		case "grant-user":
			a.grant(parts[1:], "Usage: grant-user <user-id> <r|rw|rwx>", editor.GrantUser)

		case "revoke-user":
			a.revoke(parts[1:], "Usage: revoke-user <user-id>", editor.RevokeUser)

		case "grant-group":
			a.grant(parts[1:], "Usage: grant-group <group-id> <r|rw|rwx>", editor.GrantGroup)

		case "revoke-group":
			a.revoke(parts[1:], "Usage: revoke-group <group-id>", editor.RevokeGroup)

		case "users":
			for _, u := range view.AvailableUsers {
				fmt.Fprintf(a.out, "  [%d] %s <%s>\n", u.ID, u.Name, u.Email)
			}

		case "groups":
			for _, g := range view.AvailableGroups {
				fmt.Fprintf(a.out, "  [%d] %s (%d members)\n", g.ID, g.Name, g.UserCount)
			}

		case "save":
			if err := editor.Save(ctx, a.api); err != nil {
				fmt.Fprintf(a.out, "Could not save: %s\n", err.Error())
				continue
			}
			fmt.Fprintln(a.out, "Sharing settings saved.")
			return nil

		case "cancel", "quit", "exit":
			fmt.Fprintln(a.out, "No changes saved.")
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

// grant parses "<id> <permission>" and applies fn.
func (a *App) grant(args []string, usage string, fn func(int64, models.Permission)) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, usage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, usage)
		return
	}
	perm, err := models.ParsePermission(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Unknown permission %q, use r, rw, or rwx\n", args[1])
		return
	}
	fn(id, perm)
	fmt.Fprintln(a.out, "Staged. Use 'save' to apply.")
}

// revoke parses "<id>" and applies fn.
func (a *App) revoke(args []string, usage string, fn func(int64)) {
	if len(args) < 1 {
		fmt.Fprintln(a.out, usage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, usage)
		return
	}
	fn(id)
	fmt.Fprintln(a.out, "Staged. Use 'save' to apply.")
}

func (a *App) printAccessView(v access.View) {
	fmt.Fprintf(a.out, "Owner: %s <%s>\n", v.Owner.Name, v.Owner.Email)
	fmt.Fprintf(a.out, "Share type: %s\n", v.ShareType)

	if v.ShareType == models.ShareWork {
		if v.AdminGroup != nil {
			fmt.Fprintf(a.out, "  Admin group: %s (%d members)\n", v.AdminGroup.Name, v.AdminGroup.UserCount)
		}
		if v.OwnerGroup != nil {
			fmt.Fprintf(a.out, "  Client group: %s (%d members)\n", v.OwnerGroup.Name, v.OwnerGroup.UserCount)
		}
	}

	for _, e := range v.Entries {
		subject := "user"
		if e.Type == models.SubjectGroup {
			subject = "group"
		}
		fmt.Fprintf(a.out, "  %s [%d] %s: %s\n", subject, e.SubjectID, e.SubjectName, e.Permission)
	}
}
