package model

import "time"

// Role is the capability tag attached to a user account. The only role the
// system currently issues is RoleAdmin; the column exists so that future
// non-admin accounts don't require a schema change.
type Role string

const (
	// RoleAdmin grants full access to the admin API.
	RoleAdmin Role = "admin"
)

// BootstrapUsername is the reserved username for the one-time bootstrap
// admin account. See service.EnsureBootstrapAdmin.
const BootstrapUsername = "admin"

// User is a credential record. Passwords are stored as encoded PBKDF2
// hashes (see internal/auth), never in plaintext.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // encoded hash, never expose
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity is the authenticated view of a user that flows through request
// handling. It deliberately carries no credential material.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Identity returns the credential-free view of the user.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
