package repository

import (
	"context"
	"errors"

	"raffle-tool-backend/internal/features/winner/models"
)

var ErrWinnerNotFound = errors.New("winner not found")

// WinnerRepository stores published draw results.
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	GetByID(ctx context.Context, id string) (*models.Winner, error)
	// List returns all winners ordered by date, newest first.
	List(ctx context.Context) ([]*models.Winner, error)
}
