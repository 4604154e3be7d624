package memory

import (
	"context"
	"sort"
	"sync"

	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/features/raffle/repository"
)

// Repository is an in-process raffle store. It backs the memory store driver
// and the test suite. Mutate is the exclusive-access entry point used by the
// purchase allocator; all raffle state changes go through the per-store lock.
type Repository struct {
	mu      sync.RWMutex
	raffles map[string]*models.Raffle
}

func NewMemoryRaffleRepository() *Repository {
	return &Repository{raffles: make(map[string]*models.Raffle)}
}

var _ repository.RaffleRepository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, raffle *models.Raffle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raffles[raffle.ID] = raffle.Clone()
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Raffle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raffle, ok := r.raffles[id]
	if !ok {
		return nil, repository.ErrRaffleNotFound
	}
	return raffle.Clone(), nil
}

// Mutate applies fn to the raffle under the store lock. When fn returns an
// error nothing is committed. The returned raffle is a copy of the committed
// state.
func (r *Repository) Mutate(ctx context.Context, id string, fn func(raffle *models.Raffle) error) (*models.Raffle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.raffles[id]
	if !ok {
		return nil, repository.ErrRaffleNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	r.raffles[id] = next
	return next.Clone(), nil
}

func (r *Repository) List(ctx context.Context) ([]*models.Raffle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*models.Raffle) bool { return true }), nil
}

func (r *Repository) ListByStatus(ctx context.Context, status models.RaffleStatus) ([]*models.Raffle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(raffle *models.Raffle) bool { return raffle.Status == status }), nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.raffles)), nil
}

func (r *Repository) CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, raffle := range r.raffles {
		if raffle.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *Repository) collect(keep func(*models.Raffle) bool) []*models.Raffle {
	out := make([]*models.Raffle, 0, len(r.raffles))
	for _, raffle := range r.raffles {
		if keep(raffle) {
			out = append(out, raffle.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
