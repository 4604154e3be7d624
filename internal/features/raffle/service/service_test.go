package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/features/raffle/models"
	rafflememory "raffle-tool-backend/internal/features/raffle/repository/memory"
)

func newService() RaffleService {
	return NewRaffleService(rafflememory.NewMemoryRaffleRepository(), nil, &config.Config{})
}

func validCreate() *models.RaffleCreate {
	return &models.RaffleCreate{
		Title:          "Weekly draw",
		Description:    "A hundred numbers",
		PricePerTicket: 2.5,
		TotalTickets:   100,
		Prizes:         []models.Prize{{Name: "TV", Value: 1500, Type: models.PrizeTypeProduct, IsAvailable: true}},
		BonusTiers: models.BonusTiers{
			{Quantity: 10, Boxes: 1},
			{Quantity: 50, Boxes: 3},
		},
	}
}

func TestRaffleCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active raffle with normalized tiers", func(t *testing.T) {
		svc := newService()

		raffle, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		assert.NotEmpty(t, raffle.ID)
		assert.Equal(t, models.RaffleStatusActive, raffle.Status)
		assert.Equal(t, 0, raffle.SoldTickets)
		assert.False(t, raffle.CreatedAt.IsZero())

		// Tiers are stored highest threshold first.
		require.Len(t, raffle.BonusTiers, 2)
		assert.Equal(t, 50, raffle.BonusTiers[0].Quantity)
		assert.Equal(t, 10, raffle.BonusTiers[1].Quantity)

		// Prizes get ids assigned.
		require.Len(t, raffle.Prizes, 1)
		assert.NotEmpty(t, raffle.Prizes[0].ID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newService()

		in := validCreate()
		in.TotalTickets = 0
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	})
}

func TestRaffleUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial updates", func(t *testing.T) {
		svc := newService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		title := "Updated draw"
		price := 5.0
		status := models.RaffleStatusInactive
		updated, err := svc.Update(ctx, created.ID, &models.RaffleUpdate{
			Title:          &title,
			PricePerTicket: &price,
			Status:         &status,
		})
		require.NoError(t, err)

		assert.Equal(t, "Updated draw", updated.Title)
		assert.Equal(t, 5.0, updated.PricePerTicket)
		assert.Equal(t, models.RaffleStatusInactive, updated.Status)
		// Untouched fields survive.
		assert.Equal(t, created.TotalTickets, updated.TotalTickets)
		assert.Equal(t, created.BonusTiers, updated.BonusTiers)
	})

	t.Run("re-normalizes replaced tiers", func(t *testing.T) {
		svc := newService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, &models.RaffleUpdate{
			BonusTiers: models.BonusTiers{
				{Quantity: 5, Boxes: 1},
				{Quantity: 200, Boxes: 10},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, updated.BonusTiers[0].Quantity)
	})

	t.Run("rejects unknown status and bad price", func(t *testing.T) {
		svc := newService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		bad := models.RaffleStatus("archived")
		_, err = svc.Update(ctx, created.ID, &models.RaffleUpdate{Status: &bad})
		require.Error(t, err)

		zero := 0.0
		_, err = svc.Update(ctx, created.ID, &models.RaffleUpdate{PricePerTicket: &zero})
		require.Error(t, err)
	})

	t.Run("unknown raffle", func(t *testing.T) {
		svc := newService()
		title := "x"
		_, err := svc.Update(ctx, "missing", &models.RaffleUpdate{Title: &title})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeRaffleNotFound, appErr.Code)
	})
}

func TestRaffleList(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by active status", func(t *testing.T) {
		svc := newService()

		first, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		second, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		inactive := models.RaffleStatusInactive
		_, err = svc.Update(ctx, first.ID, &models.RaffleUpdate{Status: &inactive})
		require.NoError(t, err)

		all, err := svc.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := svc.List(ctx, "active")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second.ID, active[0].ID)
	})
}

func TestRaffleGetByID(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(ctx, "missing")
	require.Error(t, err)
}

func TestRaffleUpdateKeepsDrawDate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	in := validCreate()
	draw := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	in.DrawDate = &draw

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.DrawDate)

	title := "still drawn on time"
	updated, err := svc.Update(ctx, created.ID, &models.RaffleUpdate{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.DrawDate)
	assert.True(t, draw.Equal(*updated.DrawDate))
}
