package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"raffle-tool-backend/internal/features/purchase/models"
	"raffle-tool-backend/internal/features/purchase/repository"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflememory "raffle-tool-backend/internal/features/raffle/repository/memory"
)

// Repository is the in-process purchase ledger. Allocation delegates the
// critical section to the raffle store's Mutate, so the counter advance and
// the record append commit together under the same lock.
type Repository struct {
	raffles *rafflememory.Repository

	mu        sync.RWMutex
	purchases map[string]*models.Purchase
}

func NewMemoryPurchaseRepository(raffles *rafflememory.Repository) *Repository {
	return &Repository{
		raffles:   raffles,
		purchases: make(map[string]*models.Purchase),
	}
}

var _ repository.PurchaseRepository = (*Repository)(nil)

func (r *Repository) Allocate(ctx context.Context, raffleID string, quantity int, build repository.BuildFunc) (*models.Purchase, error) {
	var purchase *models.Purchase

	_, err := r.raffles.Mutate(ctx, raffleID, func(raffle *rafflemodels.Raffle) error {
		if !raffle.IsActive() {
			return repository.ErrRaffleNotActive
		}
		if raffle.SoldTickets+quantity > raffle.TotalTickets {
			return repository.ErrCapacityExceeded
		}

		tickets := make([]int, quantity)
		for i := range tickets {
			tickets[i] = raffle.SoldTickets + i
		}

		p, err := build(raffle.Clone(), tickets)
		if err != nil {
			return err
		}

		raffle.SoldTickets += quantity
		raffle.UpdatedAt = p.CreatedAt

		r.mu.Lock()
		r.purchases[p.ID] = clone(p)
		r.mu.Unlock()

		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	purchase, ok := r.purchases[id]
	if !ok {
		return nil, repository.ErrPurchaseNotFound
	}
	return clone(purchase), nil
}

func (r *Repository) MarkPaid(ctx context.Context, id string) (*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, repository.ErrPurchaseNotFound
	}
	if purchase.IsPaid() {
		return nil, repository.ErrAlreadyPaid
	}

	purchase.PaymentStatus = models.PaymentStatusPaid
	return clone(purchase), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error) {
	return r.collect(func(p *models.Purchase) bool { return p.UserID == userID }), nil
}

func (r *Repository) ListByRaffle(ctx context.Context, raffleID string) ([]*models.Purchase, error) {
	return r.collect(func(p *models.Purchase) bool { return p.RaffleID == raffleID }), nil
}

func (r *Repository) ListPaidSince(ctx context.Context, since time.Time) ([]*models.Purchase, error) {
	return r.collect(func(p *models.Purchase) bool {
		if !p.IsPaid() {
			return false
		}
		return since.IsZero() || !p.CreatedAt.Before(since)
	}), nil
}

func (r *Repository) CountPaid(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.purchases {
		if p.IsPaid() {
			n++
		}
	}
	return n, nil
}

func (r *Repository) collect(keep func(*models.Purchase) bool) []*models.Purchase {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Purchase, 0)
	for _, p := range r.purchases {
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clone(p *models.Purchase) *models.Purchase {
	out := *p
	out.Tickets = append([]int(nil), p.Tickets...)
	return &out
}
