package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStaffRepository backs tests and local runs without a database.
type InMemoryStaffRepository struct {
	mu    sync.Mutex
	users map[string]*StaffUser
}

func NewInMemoryStaffRepository() *InMemoryStaffRepository {
	return &InMemoryStaffRepository{users: make(map[string]*StaffUser)}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *InMemoryStaffRepository) Save(ctx context.Context, user *StaffUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[emailKey(user.Email)] = user
	return nil
}

func (r *InMemoryStaffRepository) FindByEmail(ctx context.Context, email string) (*StaffUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[emailKey(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}
