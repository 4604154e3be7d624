package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/features/purchase/models"
	"raffle-tool-backend/internal/features/purchase/repository"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflerepo "raffle-tool-backend/internal/features/raffle/repository"
	userrepo "raffle-tool-backend/internal/features/user/repository"
)

type PurchaseService interface {
	// Create runs the purchase flow: validate the quantity and the buyer,
	// reserve a contiguous ticket block, resolve the bonus, and append the
	// purchase to the ledger — all or nothing.
	Create(ctx context.Context, input *models.PurchaseCreate) (*models.Purchase, error)
	// ConfirmPayment settles a pending purchase (pending -> paid).
	ConfirmPayment(ctx context.Context, id string) (*models.Purchase, error)
	GetByID(ctx context.Context, id string) (*models.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error)
	ListByRaffle(ctx context.Context, raffleID string) ([]*models.Purchase, error)
	// SoldTickets returns the ticket numbers of all paid purchases of a
	// raffle, ascending.
	SoldTickets(ctx context.Context, raffleID string) ([]int, error)
}

type purchaseService struct {
	repo   repository.PurchaseRepository
	users  userrepo.UserRepository
	cache  *cache.CacheService
	config *config.Config
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	users userrepo.UserRepository,
	cache *cache.CacheService,
	config *config.Config,
) PurchaseService {
	return &purchaseService{
		repo:   repo,
		users:  users,
		cache:  cache,
		config: config,
	}
}

func (s *purchaseService) Create(ctx context.Context, input *models.PurchaseCreate) (*models.Purchase, error) {
	// Quantity is rejected before anything is touched; a bad request must
	// leave no trace in the counter.
	if input.Quantity <= 0 {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidQuantity, "Quantity must be positive, got %d", input.Quantity)
	}

	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound, "User not found: %s", input.UserID)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	status := models.PaymentStatusPending
	if s.config.Payment.AutoConfirm {
		status = models.PaymentStatusPaid
	}

	purchase, err := s.repo.Allocate(ctx, input.RaffleID, input.Quantity,
		func(raffle *rafflemodels.Raffle, tickets []int) (*models.Purchase, error) {
			return &models.Purchase{
				ID:            uuid.New().String(),
				UserID:        input.UserID,
				RaffleID:      input.RaffleID,
				Tickets:       tickets,
				Quantity:      input.Quantity,
				TotalAmount:   float64(input.Quantity) * raffle.PricePerTicket,
				BonusBoxes:    raffle.BonusTiers.Resolve(input.Quantity),
				PaymentStatus: status,
				CreatedAt:     time.Now(),
			}, nil
		})
	if err != nil {
		return nil, mapAllocateError(err, input)
	}

	s.invalidate(ctx, purchase.RaffleID)

	logger.Info().
		Str("purchase_id", purchase.ID).
		Str("raffle_id", purchase.RaffleID).
		Str("user_id", purchase.UserID).
		Int("quantity", purchase.Quantity).
		Int("bonus_boxes", purchase.BonusBoxes).
		Str("payment_status", string(purchase.PaymentStatus)).
		Msg("purchase created")

	return purchase, nil
}

func (s *purchaseService) ConfirmPayment(ctx context.Context, id string) (*models.Purchase, error) {
	purchase, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPurchaseNotFound):
			return nil, apperrors.Newf(apperrors.ErrCodePurchaseNotFound, "Purchase not found: %s", id)
		case errors.Is(err, repository.ErrAlreadyPaid):
			return nil, apperrors.Newf(apperrors.ErrCodeConflict, "Purchase already paid: %s", id)
		default:
			return nil, apperrors.NewDatabaseError("confirm payment", err)
		}
	}

	s.invalidate(ctx, purchase.RaffleID)

	return purchase, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	purchase, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPurchaseNotFound) {
		return nil, apperrors.Newf(apperrors.ErrCodePurchaseNotFound, "Purchase not found: %s", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get purchase", err)
	}
	return purchase, nil
}

func (s *purchaseService) ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error) {
	purchases, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list purchases by user", err)
	}
	return purchases, nil
}

func (s *purchaseService) ListByRaffle(ctx context.Context, raffleID string) ([]*models.Purchase, error) {
	purchases, err := s.repo.ListByRaffle(ctx, raffleID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list purchases by raffle", err)
	}
	return purchases, nil
}

func (s *purchaseService) SoldTickets(ctx context.Context, raffleID string) ([]int, error) {
	purchases, err := s.ListByRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	tickets := make([]int, 0)
	for _, purchase := range purchases {
		if purchase.IsPaid() {
			tickets = append(tickets, purchase.Tickets...)
		}
	}
	sort.Ints(tickets)
	return tickets, nil
}

func (s *purchaseService) invalidate(ctx context.Context, raffleID string) {
	if err := s.cache.InvalidateRaffle(ctx, raffleID); err != nil {
		logger.Warn().Err(err).Str("raffle_id", raffleID).Msg("raffle cache invalidation failed")
	}
	if err := s.cache.InvalidateLeaderboard(ctx); err != nil {
		logger.Warn().Err(err).Msg("leaderboard cache invalidation failed")
	}
}

func mapAllocateError(err error, input *models.PurchaseCreate) error {
	switch {
	case errors.Is(err, rafflerepo.ErrRaffleNotFound):
		return apperrors.Newf(apperrors.ErrCodeRaffleNotFound, "Raffle not found: %s", input.RaffleID)
	case errors.Is(err, repository.ErrRaffleNotActive):
		return apperrors.Newf(apperrors.ErrCodeRaffleNotActive, "Raffle is not active: %s", input.RaffleID)
	case errors.Is(err, repository.ErrCapacityExceeded):
		return apperrors.Newf(apperrors.ErrCodeCapacityExceeded, "Not enough tickets left for quantity %d", input.Quantity)
	case errors.Is(err, repository.ErrAllocationConflict):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "Allocation contention, please retry")
	default:
		return apperrors.NewDatabaseError("allocate purchase", err)
	}
}
