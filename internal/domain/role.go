package domain

import "strings"

// Role is the access level of an identity.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
	RoleRevoked Role = "revoked"
)

// ParseRole maps stored values onto the closed set of roles. Records written
// by the legacy "remove member" action carry an empty role and read as revoked.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleGuest:
		return RoleGuest
	case RoleMember:
		return RoleMember
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleRevoked
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin, RoleRevoked:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
