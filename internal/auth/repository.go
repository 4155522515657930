package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no staff account matches the email.
var ErrUserNotFound = errors.New("staff user not found")

// StaffRepository persists console accounts. Email is the natural key and
// matches case-insensitively, like the catalog's name lookups.
type StaffRepository interface {
	Save(ctx context.Context, user *StaffUser) error
	FindByEmail(ctx context.Context, email string) (*StaffUser, error)
}
