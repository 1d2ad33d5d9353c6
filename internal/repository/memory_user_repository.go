package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/content-gateway/internal/domain"
)

// memoryUserRepository is the stub credential store used when Postgres is
// not configured. Purchase state held here is simulated, not a payment
// record. It returns pgx.ErrNoRows for misses so callers handle both
// implementations identically.
type memoryUserRepository struct {
	mu     sync.RWMutex
	byID   map[string]domain.User
	byName map[string]string
}

// NewMemoryUserRepository returns an empty in-memory store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:   make(map[string]domain.User),
		byName: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byName[user.Username] = user.ID
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(r.byName, stored.Username)

	user.UpdatedAt = time.Now()
	r.byID[user.ID] = *user
	r.byName[user.Username] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := r.byID[id]
	return &user, nil
}
