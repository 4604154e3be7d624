package memory

import (
	"context"
	"sort"
	"sync"

	"raffle-tool-backend/internal/features/winner/models"
	"raffle-tool-backend/internal/features/winner/repository"
)

// Repository is an in-memory WinnerRepository used by the memory store
// driver and in tests.
type Repository struct {
	mu      sync.RWMutex
	winners map[string]*models.Winner
}

func NewMemoryWinnerRepository() *Repository {
	return &Repository{winners: make(map[string]*models.Winner)}
}

var _ repository.WinnerRepository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, winner *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *winner
	r.winners[winner.ID] = &clone
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	winner, ok := r.winners[id]
	if !ok {
		return nil, repository.ErrWinnerNotFound
	}
	clone := *winner
	return &clone, nil
}

func (r *Repository) List(ctx context.Context) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	winners := make([]*models.Winner, 0, len(r.winners))
	for _, winner := range r.winners {
		clone := *winner
		winners = append(winners, &clone)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Date.After(winners[j].Date)
	})
	return winners, nil
}
