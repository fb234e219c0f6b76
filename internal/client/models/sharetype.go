package models

// ShareType is the sharing mode of a password record.
//
//   - private: owner only; no ACL sections apply.
//   - custom:  explicit per-user / per-group grants.
//   - work:    visible to the organizational admin group and the owner's
//     client group.
type ShareType string

const (
	SharePrivate ShareType = "private"
	ShareCustom  ShareType = "custom"
	ShareWork    ShareType = "work"
)

// ParseShareType resolves the legacy aliases the portal still emits
// ("group" for custom, "public" for work). Unknown or empty values fall
// back to private, the most restrictive mode.
func ParseShareType(s string) ShareType {
	switch s {
	case string(ShareCustom), "group":
		return ShareCustom
	case string(ShareWork), "public":
		return ShareWork
	case string(SharePrivate):
		return SharePrivate
	}
	return SharePrivate
}

// SubjectType distinguishes the two kinds of ACL subjects.
type SubjectType string

const (
	SubjectUser  SubjectType = "user"
	SubjectGroup SubjectType = "group"
)

// AccessEntry is one grant beyond the owner. The owner always holds full
// access implicitly and is never represented as a row.
type AccessEntry struct {
	ID          int64       `json:"id"`
	Type        SubjectType `json:"type"`
	SubjectID   int64       `json:"subject_id"`
	SubjectName string      `json:"subject_name"`
	Permission  Permission  `json:"-"`
	UserCount   int         `json:"user_count,omitempty"`
}
