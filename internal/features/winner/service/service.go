package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
	rafflerepo "raffle-tool-backend/internal/features/raffle/repository"
	userrepo "raffle-tool-backend/internal/features/user/repository"
	"raffle-tool-backend/internal/features/winner/models"
	"raffle-tool-backend/internal/features/winner/repository"
)

type WinnerService interface {
	// Record publishes a draw result. User phone and raffle title are
	// resolved from their stores at publish time.
	Record(ctx context.Context, create *models.WinnerCreate) (*models.Winner, error)
	List(ctx context.Context) ([]*models.Winner, error)
}

type winnerService struct {
	repo    repository.WinnerRepository
	users   userrepo.UserRepository
	raffles rafflerepo.RaffleRepository
}

func NewWinnerService(
	repo repository.WinnerRepository,
	users userrepo.UserRepository,
	raffles rafflerepo.RaffleRepository,
) WinnerService {
	return &winnerService{repo: repo, users: users, raffles: raffles}
}

func (s *winnerService) Record(ctx context.Context, create *models.WinnerCreate) (*models.Winner, error) {
	user, err := s.users.GetByID(ctx, create.UserID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	raffle, err := s.raffles.GetByID(ctx, create.RaffleID)
	if err != nil {
		if errors.Is(err, rafflerepo.ErrRaffleNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeRaffleNotFound, "Raffle not found")
		}
		return nil, apperrors.NewDatabaseError("get raffle", err)
	}

	if create.WinningNumber < 0 || create.WinningNumber >= raffle.TotalTickets {
		return nil, apperrors.Newf(apperrors.ErrCodeValidation,
			"Winning number must be in [0, %d)", raffle.TotalTickets)
	}

	winner := &models.Winner{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserPhone:     user.Phone,
		RaffleID:      raffle.ID,
		RaffleTitle:   raffle.Title,
		PrizeName:     create.PrizeName,
		WinningNumber: create.WinningNumber,
		Date:          time.Now(),
	}

	if err := s.repo.Create(ctx, winner); err != nil {
		return nil, apperrors.NewDatabaseError("create winner", err)
	}

	logger.Info().
		Str("winner_id", winner.ID).
		Str("raffle_id", winner.RaffleID).
		Str("user_id", winner.UserID).
		Int("winning_number", winner.WinningNumber).
		Msg("Winner recorded")

	return winner, nil
}

func (s *winnerService) List(ctx context.Context) ([]*models.Winner, error) {
	winners, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list winners", err)
	}
	return winners, nil
}
