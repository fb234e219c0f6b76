package models

import (
	"errors"
	"fmt"
)

// Permission is the canonical in-memory representation of an access tier:
// a 3-bit flag set. Only three combinations are meaningful on the wire
// (r, rw, rwx); the flags exist so that tier comparisons stay cheap and the
// historical numeric encoding maps onto the same values.
type Permission uint8

const (
	PermManage Permission = 1 << iota // manage-access
	PermWrite                         // modify the record
	PermRead                          // view and copy the secret
)

// The three tiers the portal understands.
const (
	AccessRead      = PermRead
	AccessReadWrite = PermRead | PermWrite
	AccessFull      = PermRead | PermWrite | PermManage
)

var ErrUnknownPermission = errors.New("unknown permission encoding")

// CanRead reports whether the tier includes read access.
func (p Permission) CanRead() bool { return p&PermRead != 0 }

// CanWrite reports whether the tier includes write access.
func (p Permission) CanWrite() bool { return p&PermWrite != 0 }

// CanManage reports whether the tier includes manage-access.
func (p Permission) CanManage() bool { return p&PermManage != 0 }

// String renders the canonical wire form: "r", "rw" or "rwx".
func (p Permission) String() string {
	switch p {
	case AccessRead:
		return "r"
	case AccessReadWrite:
		return "rw"
	case AccessFull:
		return "rwx"
	}
	return fmt.Sprintf("permission(%d)", uint8(p))
}

// ParsePermission decodes any of the encodings the portal has used over
// time: the current "r"/"rw"/"rwx" strings and the legacy "read"/"write"
// pair (where "write" always implied read).
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "r", "read":
		return AccessRead, nil
	case "rw", "write":
		return AccessReadWrite, nil
	case "rwx", "admin":
		return AccessFull, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPermission, s)
}

// PermissionFromMask decodes the legacy numeric encoding (read=4, write=2,
// manage=1). Masks that grant write or manage without read are widened to a
// valid tier: the portal never issued write-only grants.
func PermissionFromMask(mask int) (Permission, error) {
	if mask <= 0 || mask > 7 {
		return 0, fmt.Errorf("%w: mask %d", ErrUnknownPermission, mask)
	}
	p := Permission(0)
	if mask&4 != 0 {
		p |= PermRead
	}
	if mask&2 != 0 {
		p |= PermWrite
	}
	if mask&1 != 0 {
		p |= PermManage
	}
	if p.CanManage() {
		return AccessFull, nil
	}
	if p.CanWrite() {
		return AccessReadWrite, nil
	}
	return AccessRead, nil
}
