// Package models defines the records exchanged with the Passdoo portal API
// and the client-side vocabulary for permissions and share modes.
package models

// PasswordRecord is one row of the password list as returned by the portal.
//
// The plaintext secret is never part of this record: it is fetched lazily
// by id via the single-record endpoint and held only transiently by the
// presentation layer. All fields are owned by the backend; the client keeps
// a read-only copy that is invalidated on every list reload.
type PasswordRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	URI          string `json:"uri"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	CategoryID   *int64 `json:"category_id"`
	PartnerID    *int64 `json:"partner_id"`
	PartnerName  string `json:"partner_name"`
	PartnerImage string `json:"partner_image"`
	IsOwner      bool   `json:"is_owner"`
	IsShared     bool   `json:"is_shared"`
	CanEdit      bool   `json:"can_edit"`
	CanDelete    bool   `json:"can_delete"`
	AccessLevel  string `json:"access_level"`
}

// PasswordSecret is the single-record response body that carries the
// plaintext. Only the fields the client consumes are mapped.
type PasswordSecret struct {
	ID            int64  `json:"id"`
	PasswordPlain string `json:"password_plain"`
}

// Editable reports whether the current user may modify the record,
// including category and partner reassignment.
func (p *PasswordRecord) Editable() bool {
	return p.CanEdit || p.AccessLevel == "write"
}

// Client is a tenant/customer grouping key for passwords ("partner" on the
// wire). Immutable from the client application's perspective within a session.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Category is a classification tag. The portal returns either {id,label}
// or {value,name} depending on deployment, so both spellings are mapped.
type Category struct {
	ID    int64  `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
}

// DisplayName returns the human label, whichever field the server filled.
func (c Category) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// User is a directory entry offered for per-user grants.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Group is a directory entry offered for per-group grants, scoped to one client.
type Group struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserCount int    `json:"user_count"`
}
