package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/features/user/models"
	"raffle-tool-backend/internal/features/user/repository"
)

type UserService interface {
	// GetOrCreateByPhone is the login operation: returns the existing user
	// for the phone or registers a new one.
	GetOrCreateByPhone(ctx context.Context, input *models.UserCreate) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetOrCreateByPhone(ctx context.Context, input *models.UserCreate) (*models.User, error) {
	if input.Phone == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "phone is required")
	}

	user, err := s.repo.GetByPhone(ctx, input.Phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperrors.NewDatabaseError("get user by phone", err)
	}

	newUser := &models.User{
		ID:        uuid.New().String(),
		Phone:     input.Phone,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}

	err = s.repo.Create(ctx, newUser)
	if errors.Is(err, repository.ErrPhoneExists) {
		// Lost a registration race, the phone now exists.
		return s.repo.GetByPhone(ctx, input.Phone)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	logger.Info().Str("user_id", newUser.ID).Msg("user registered")
	return newUser, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound, "User not found: %s", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}
