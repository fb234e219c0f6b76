package access

import (
	"context"
	"sort"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/models"
)

// Editor buffers sharing changes locally while the user composes them.
// Nothing touches the server until Save; a rejected save leaves the staged
// state intact so the user can correct and retry.
type Editor struct {
	passwordID  int64
	shareType   models.ShareType
	userGrants  map[int64]models.Permission
	groupGrants map[int64]models.Permission
}

// NewEditor seeds an editor from the current normalized view.
func NewEditor(passwordID int64, v View) *Editor {
	e := &Editor{
		passwordID:  passwordID,
		shareType:   v.ShareType,
		userGrants:  make(map[int64]models.Permission),
		groupGrants: make(map[int64]models.Permission),
	}
	for _, entry := range v.Entries {
		switch entry.Type {
		case models.SubjectUser:
			e.userGrants[entry.SubjectID] = entry.Permission
		case models.SubjectGroup:
			e.groupGrants[entry.SubjectID] = entry.Permission
		}
	}
	return e
}

// ShareType returns the staged sharing mode.
func (e *Editor) ShareType() models.ShareType { return e.shareType }

// SetShareType stages a sharing-mode change. Switching to private drops all
// staged grants: the mode admits none.
func (e *Editor) SetShareType(st models.ShareType) {
	e.shareType = st
	if st == models.SharePrivate {
		clear(e.userGrants)
		clear(e.groupGrants)
	}
}

// GrantUser stages a per-user grant (add or permission change).
func (e *Editor) GrantUser(userID int64, p models.Permission) {
	e.userGrants[userID] = p
}

// RevokeUser stages the removal of a per-user grant.
func (e *Editor) RevokeUser(userID int64) {
	delete(e.userGrants, userID)
}

// GrantGroup stages a per-group grant.
func (e *Editor) GrantGroup(groupID int64, p models.Permission) {
	e.groupGrants[groupID] = p
}

// RevokeGroup stages the removal of a per-group grant.
func (e *Editor) RevokeGroup(groupID int64) {
	delete(e.groupGrants, groupID)
}

// BuildSavePayload emits the batch full-replacement body. Grants are sorted
// by subject id so identical staged state always yields an identical payload.
func (e *Editor) BuildSavePayload() api.UpdateAccessRequest {
	req := api.UpdateAccessRequest{
		ShareType: e.shareType,
		Users:     make([]api.UserGrant, 0, len(e.userGrants)),
		Groups:    make([]api.GroupGrant, 0, len(e.groupGrants)),
	}
	for id, p := range e.userGrants {
		req.Users = append(req.Users, api.UserGrant{UserID: id, Permission: api.WirePermission{Permission: p}})
	}
	for id, p := range e.groupGrants {
		req.Groups = append(req.Groups, api.GroupGrant{GroupID: id, Permission: api.WirePermission{Permission: p}})
	}
	sort.Slice(req.Users, func(i, j int) bool { return req.Users[i].UserID < req.Users[j].UserID })
	sort.Slice(req.Groups, func(i, j int) bool { return req.Groups[i].GroupID < req.Groups[j].GroupID })
	return req
}

// Save replaces the password's sharing configuration with the staged state.
func (e *Editor) Save(ctx context.Context, c *api.Client) error {
	return c.UpdateAccess(ctx, e.passwordID, e.BuildSavePayload())
}
