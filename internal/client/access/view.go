// Package access maps a password's raw access-control descriptor into a
// normalized view for display and into an editor for composing a batch
// permission save.
package access

import (
	"context"

	"github.com/passdoo/desktop-cli/internal/client/api"
	"github.com/passdoo/desktop-cli/internal/client/models"
)

// Owner identifies the record owner, who implicitly holds full access and
// never appears among the editable entries.
type Owner struct {
	ID    int64
	Name  string
	Email string
}

// GroupSection is the admin or owner/client group surfaced for work-shared
// records.
type GroupSection struct {
	ID        int64
	Name      string
	UserCount int
}

// View is the normalized access-control state of one password. Which
// sections are meaningful depends on ShareType: private shows only the
// owner, work adds the admin and owner-group sections, custom shows the
// explicit entries.
type View struct {
	Owner           Owner
	AdminGroup      *GroupSection
	OwnerGroup      *GroupSection
	Entries         []models.AccessEntry
	ShareType       models.ShareType
	CanManageAccess bool
	AvailableUsers  []models.User
	AvailableGroups []models.Group
}

// Normalize converts the wire descriptor into a View, resolving legacy
// share-type aliases. A descriptor declared private that nevertheless
// carries direct user grants is repaired to custom: some portal versions
// left the declared type stale after individual grants were added.
func Normalize(d api.AccessDescriptor) View {
	v := View{
		Owner:           Owner{ID: d.Owner.ID, Name: d.Owner.Name, Email: d.Owner.Email},
		ShareType:       models.ParseShareType(d.ShareType),
		CanManageAccess: d.CanManageAccess,
		AvailableUsers:  d.AvailableUsers,
		AvailableGroups: d.AvailableGroups,
	}

	if d.AdminGroup != nil {
		v.AdminGroup = &GroupSection{ID: d.AdminGroup.ID, Name: d.AdminGroup.Name, UserCount: d.AdminGroup.UserCount}
	}
	if d.OwnerGroup != nil {
		v.OwnerGroup = &GroupSection{ID: d.OwnerGroup.ID, Name: d.OwnerGroup.Name, UserCount: d.OwnerGroup.UserCount}
	}

	hasUserEntry := false
	for _, e := range d.Entries {
		v.Entries = append(v.Entries, models.AccessEntry{
			ID:          e.ID,
			Type:        e.Type,
			SubjectID:   e.SubjectID,
			SubjectName: e.SubjectName,
			Permission:  e.Permissions.Permission,
			UserCount:   e.UserCount,
		})
		if e.Type == models.SubjectUser {
			hasUserEntry = true
		}
	}

	if v.ShareType == models.SharePrivate && hasUserEntry {
		v.ShareType = models.ShareCustom
	}
	return v
}

// Load fetches and normalizes the access state for one password.
func Load(ctx context.Context, c *api.Client, passwordID int64) (View, error) {
	d, err := c.GetAccess(ctx, passwordID)
	if err != nil {
		return View{}, err
	}
	return Normalize(d), nil
}
