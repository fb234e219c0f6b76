package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/passdoo/desktop-cli/internal/client/models"
)

// WirePermission decodes whatever permission encoding the portal emits:
// tier strings ("r", "rw", "rwx"), legacy strings ("read", "write") or the
// historical numeric bitmask. The canonical form is models.Permission.
type WirePermission struct {
	models.Permission
}

func (w *WirePermission) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		w.Permission = models.AccessRead
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		p, err := models.ParsePermission(str)
		if err != nil {
			return err
		}
		w.Permission = p
		return nil
	}
	mask, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %s", models.ErrUnknownPermission, s)
	}
	p, err := models.PermissionFromMask(mask)
	if err != nil {
		return err
	}
	w.Permission = p
	return nil
}

func (w WirePermission) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Permission.String())
}

// WireAccessEntry is one ACL row as the portal returns it.
type WireAccessEntry struct {
	ID          int64              `json:"id"`
	Type        models.SubjectType `json:"type"`
	SubjectID   int64              `json:"subject_id"`
	SubjectName string             `json:"subject_name"`
	Permissions WirePermission     `json:"permissions"`
	UserCount   int                `json:"user_count"`
}

// GroupRef names the admin or owner group surfaced for work-shared records.
type GroupRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserCount int    `json:"user_count"`
}

// AccessDescriptor is the raw access-control response for one password.
// Normalization (legacy aliases, share-type repair) is the access package's
// job; this type stays close to the wire.
type AccessDescriptor struct {
	envelope
	Owner struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"owner"`
	ShareType       string            `json:"share_type"`
	AdminGroup      *GroupRef         `json:"admin_group"`
	OwnerGroup      *GroupRef         `json:"owner_group"`
	Entries         []WireAccessEntry `json:"entries"`
	CanManageAccess bool              `json:"can_manage_access"`
	AvailableUsers  []models.User     `json:"available_users"`
	AvailableGroups []models.Group    `json:"available_groups"`
}

// GetAccess fetches the access-control descriptor for one password.
func (c *Client) GetAccess(ctx context.Context, passwordID int64) (AccessDescriptor, error) {
	var resp AccessDescriptor
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/extension/password/%d/access", passwordID), nil, &resp); err != nil {
		return AccessDescriptor{}, err
	}
	if resp.Error != "" {
		return AccessDescriptor{}, resp.reject("access descriptor rejected")
	}
	return resp, nil
}

// UserGrant and GroupGrant are the rows of a batch permission save.
type UserGrant struct {
	UserID     int64          `json:"user_id"`
	Permission WirePermission `json:"permission"`
}

type GroupGrant struct {
	GroupID    int64          `json:"group_id"`
	Permission WirePermission `json:"permission"`
}

// UpdateAccessRequest replaces a password's whole sharing configuration in
// one call. This batch form supersedes the older incremental add/update/
// remove endpoints.
type UpdateAccessRequest struct {
	ShareType models.ShareType `json:"share_type"`
	Users     []UserGrant      `json:"users"`
	Groups    []GroupGrant     `json:"groups"`
}

// UpdateAccess saves the sharing configuration for one password.
func (c *Client) UpdateAccess(ctx context.Context, passwordID int64, req UpdateAccessRequest) error {
	var resp envelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/extension/password/%d/access", passwordID), req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return resp.reject("permission save rejected")
	}
	return nil
}
