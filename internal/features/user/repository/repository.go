package repository

import (
	"context"
	"errors"

	"raffle-tool-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrPhoneExists signals a lost registration race: another request
	// created the phone first. Callers re-read by phone.
	ErrPhoneExists = errors.New("phone is already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
