package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

var Roles = []Role{RoleBuyer, RoleVendor, RoleAdmin}

func (r Role) Valid() bool {
	for _, x := range Roles {
		if r == x {
			return true
		}
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Initial() string {
	for _, r := range strings.TrimSpace(u.FullName) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func (u User) CreatedLabel() string {
	if u.CreatedAt.IsZero() {
		return ""
	}
	return u.CreatedAt.Format("02/01/2006")
}

// Profile is what /auth/profile and /auth/login return for the signed-in
// account.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type LoginResult struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}
