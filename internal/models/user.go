package models

import "strings"

// RoleName identifies what a user is allowed to see and do.
type RoleName string

const (
	RoleDiner      RoleName = "diner"
	RoleFranchisee RoleName = "franchisee"
	RoleAdmin      RoleName = "admin"
)

// Role is one entry of a user's role list. Franchisee roles carry the id of
// the owned franchise in ObjectID.
type Role struct {
	Role     RoleName `json:"role"`
	ObjectID ID       `json:"objectId,omitempty"`
}

// User is the authenticated identity returned by the auth and user endpoints.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Role == name {
			return true
		}
	}
	return false
}

// FranchiseID returns the owned franchise id for franchisee users.
func (u *User) FranchiseID() (ID, bool) {
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && !r.ObjectID.IsZero() {
			return r.ObjectID, true
		}
	}
	return "", false
}

// Initials renders the navigation badge for a user name: the uppercased
// first letters of the first two space-separated words ("Test User" -> "TU").
func Initials(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users []User `json:"users"`
	More  bool   `json:"more"`
}
