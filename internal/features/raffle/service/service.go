package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/features/raffle/repository"
)

type RaffleService interface {
	Create(ctx context.Context, input *models.RaffleCreate) (*models.Raffle, error)
	Update(ctx context.Context, id string, input *models.RaffleUpdate) (*models.Raffle, error)
	GetByID(ctx context.Context, id string) (*models.Raffle, error)
	List(ctx context.Context, status string) ([]*models.Raffle, error)
}

type raffleService struct {
	repo   repository.RaffleRepository
	cache  *cache.CacheService
	config *config.Config
}

func NewRaffleService(repo repository.RaffleRepository, cache *cache.CacheService, config *config.Config) RaffleService {
	return &raffleService{
		repo:   repo,
		cache:  cache,
		config: config,
	}
}

func (s *raffleService) Create(ctx context.Context, input *models.RaffleCreate) (*models.Raffle, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	now := time.Now()
	raffle := &models.Raffle{
		ID:             uuid.New().String(),
		Title:          input.Title,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		PricePerTicket: input.PricePerTicket,
		TotalTickets:   input.TotalTickets,
		SoldTickets:    0,
		DrawDate:       input.DrawDate,
		Prizes:         ensurePrizeIDs(input.Prizes),
		BonusTiers:     input.BonusTiers.Normalized(),
		Status:         models.RaffleStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, raffle); err != nil {
		return nil, apperrors.NewDatabaseError("create raffle", err)
	}

	s.invalidate(ctx, raffle.ID)

	logger.Info().
		Str("raffle_id", raffle.ID).
		Int("total_tickets", raffle.TotalTickets).
		Float64("price_per_ticket", raffle.PricePerTicket).
		Msg("raffle created")

	return raffle, nil
}

// Update edits raffle fields through the repository's exclusive section, so
// an allocation committing concurrently keeps its counter advance. The edit
// never touches SoldTickets.
func (s *raffleService) Update(ctx context.Context, id string, input *models.RaffleUpdate) (*models.Raffle, error) {
	raffle, err := s.repo.Mutate(ctx, id, func(raffle *models.Raffle) error {
		return applyUpdate(raffle, input)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, mapRepoError(err, id)
	}

	s.invalidate(ctx, raffle.ID)

	return raffle, nil
}

func applyUpdate(raffle *models.Raffle, input *models.RaffleUpdate) error {
	if input.Title != nil {
		raffle.Title = *input.Title
	}
	if input.Description != nil {
		raffle.Description = *input.Description
	}
	if input.ImageURL != nil {
		raffle.ImageURL = *input.ImageURL
	}
	if input.PricePerTicket != nil {
		if *input.PricePerTicket <= 0 {
			return apperrors.Wrap(models.ErrInvalidPrice, apperrors.ErrCodeValidation, models.ErrInvalidPrice.Error())
		}
		raffle.PricePerTicket = *input.PricePerTicket
	}
	if input.DrawDate != nil {
		raffle.DrawDate = input.DrawDate
	}
	if input.Prizes != nil {
		raffle.Prizes = ensurePrizeIDs(input.Prizes)
	}
	if input.BonusTiers != nil {
		if err := input.BonusTiers.Validate(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
		}
		raffle.BonusTiers = input.BonusTiers.Normalized()
	}
	if input.Status != nil {
		if *input.Status != models.RaffleStatusActive && *input.Status != models.RaffleStatusInactive {
			return apperrors.Newf(apperrors.ErrCodeValidation, "unknown raffle status: %s", *input.Status)
		}
		raffle.Status = *input.Status
	}

	raffle.UpdatedAt = time.Now()
	return nil
}

func (s *raffleService) GetByID(ctx context.Context, id string) (*models.Raffle, error) {
	var raffle models.Raffle
	cacheKey := fmt.Sprintf("raffle:%s", id)

	err := s.cache.GetOrSet(ctx, cacheKey, &raffle, s.config.Cache.RaffleTTL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	return &raffle, nil
}

func (s *raffleService) List(ctx context.Context, status string) ([]*models.Raffle, error) {
	var raffles []*models.Raffle
	cacheKey := "raffles:list"
	if status != "" {
		cacheKey = "raffles:list:" + status
	}

	err := s.cache.GetOrSet(ctx, cacheKey, &raffles, s.config.Cache.RaffleTTL, func() (interface{}, error) {
		if status == "" {
			return s.repo.List(ctx)
		}
		return s.repo.ListByStatus(ctx, models.RaffleStatus(status))
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list raffles", err)
	}

	return raffles, nil
}

func (s *raffleService) invalidate(ctx context.Context, raffleID string) {
	if err := s.cache.InvalidateRaffle(ctx, raffleID); err != nil {
		logger.Warn().Err(err).Str("raffle_id", raffleID).Msg("raffle cache invalidation failed")
	}
}

func ensurePrizeIDs(prizes []models.Prize) []models.Prize {
	out := append([]models.Prize(nil), prizes...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}

func mapRepoError(err error, raffleID string) error {
	if errors.Is(err, repository.ErrRaffleNotFound) {
		return apperrors.Newf(apperrors.ErrCodeRaffleNotFound, "Raffle not found: %s", raffleID)
	}
	if errors.Is(err, repository.ErrMutationConflict) {
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "Raffle update contention, please retry")
	}
	return apperrors.NewDatabaseError("get raffle", err)
}
