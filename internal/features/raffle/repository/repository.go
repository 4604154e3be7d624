package repository

import (
	"context"
	"errors"

	"raffle-tool-backend/internal/features/raffle/models"
)

var (
	ErrRaffleNotFound = errors.New("raffle not found")
	// ErrMutationConflict is returned when Mutate exhausts its retry budget
	// under contention on the raffle record.
	ErrMutationConflict = errors.New("raffle mutation conflict")
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle *models.Raffle) error
	GetByID(ctx context.Context, id string) (*models.Raffle, error)
	// Mutate applies fn to the raffle inside the store's exclusive section,
	// the same one ticket allocation runs in. fn sees the current record;
	// an error from fn commits nothing. Every raffle write after creation
	// goes through Mutate so a concurrent allocation is never overwritten.
	Mutate(ctx context.Context, id string, fn func(raffle *models.Raffle) error) (*models.Raffle, error)
	List(ctx context.Context) ([]*models.Raffle, error)
	ListByStatus(ctx context.Context, status models.RaffleStatus) ([]*models.Raffle, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error)
}
