package auth

import "time"

// Staff roles. Imports require RoleAdmin or RoleManager.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// StaffUser is a console account.
type StaffUser struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
}
