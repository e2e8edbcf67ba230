// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known permission codenames checked by the authorization rules.
// Additional codenames can be created at runtime; these are seeded.
const (
	PermAddBlog     = "add_blog"
	PermAddCategory = "add_category"
	PermAddUser     = "add_customuser"
)

// User represents an account that can authenticate and act on the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneCode    string    `json:"phone_code"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Permissions holds the granted codenames, populated by the user
	// store when the account is loaded for a request.
	Permissions []string `json:"-"`
}

// HasPerm returns true if the user holds the given permission codename.
func (u *User) HasPerm(codename string) bool {
	for _, p := range u.Permissions {
		if p == codename {
			return true
		}
	}
	return false
}

// Permission is a named capability grantable to users. Codenames are
// globally unique.
type Permission struct {
	ID       uuid.UUID `json:"id"`
	Codename string    `json:"codename"`
}
