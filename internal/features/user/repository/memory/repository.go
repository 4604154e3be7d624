package memory

import (
	"context"
	"sync"

	"raffle-tool-backend/internal/features/user/models"
	"raffle-tool-backend/internal/features/user/repository"
)

type Repository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byPhone map[string]string
}

func NewMemoryUserRepository() *Repository {
	return &Repository{
		users:   make(map[string]*models.User),
		byPhone: make(map[string]string),
	}
}

var _ repository.UserRepository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byPhone[user.Phone]; exists {
		return repository.ErrPhoneExists
	}

	u := *user
	r.users[u.ID] = &u
	r.byPhone[u.Phone] = u.ID
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *Repository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byPhone[phone]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
