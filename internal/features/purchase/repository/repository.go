package repository

import (
	"context"
	"errors"
	"time"

	"raffle-tool-backend/internal/features/purchase/models"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrRaffleNotActive  = errors.New("raffle is not active")
	ErrCapacityExceeded = errors.New("requested quantity exceeds remaining tickets")
	// ErrAllocationConflict is returned when the optimistic allocation loop
	// exhausts its retry budget under contention. Callers treat it as a
	// transient conflict, never as a capacity failure.
	ErrAllocationConflict = errors.New("allocation conflict: too much contention")
	ErrAlreadyPaid        = errors.New("purchase is already paid")
)

// BuildFunc turns an allocation into the purchase record to commit. It runs
// inside the allocation critical section with the raffle state as of the
// allocation and the reserved ticket numbers; returning an error aborts the
// allocation with nothing committed.
type BuildFunc func(raffle *rafflemodels.Raffle, tickets []int) (*models.Purchase, error)

type PurchaseRepository interface {
	// Allocate reserves quantity tickets from the raffle's pool and persists
	// the purchase built by build as a single atomic unit: the raffle's
	// sold-tickets counter and the purchase record are committed together or
	// not at all. Allocations for the same raffle are serialized; different
	// raffles do not block each other.
	Allocate(ctx context.Context, raffleID string, quantity int, build BuildFunc) (*models.Purchase, error)

	GetByID(ctx context.Context, id string) (*models.Purchase, error)
	// MarkPaid transitions pending -> paid.
	MarkPaid(ctx context.Context, id string) (*models.Purchase, error)
	// ListByUser returns the user's purchases ordered by created_at descending.
	ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error)
	ListByRaffle(ctx context.Context, raffleID string) ([]*models.Purchase, error)
	// ListPaidSince returns paid purchases created at or after since; the
	// zero time returns all paid purchases.
	ListPaidSince(ctx context.Context, since time.Time) ([]*models.Purchase, error)
	CountPaid(ctx context.Context) (int64, error)
}
