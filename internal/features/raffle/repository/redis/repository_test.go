package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/features/raffle/repository"
)

func newRepo(t *testing.T) (*redis.Client, repository.RaffleRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, NewRedisRaffleRepository(client)
}

func seedRaffle(t *testing.T, repo repository.RaffleRepository) *models.Raffle {
	t.Helper()
	raffle := &models.Raffle{
		ID:             "r1",
		Title:          "Draw",
		PricePerTicket: 2,
		TotalTickets:   100,
		Status:         models.RaffleStatusActive,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), raffle))
	return raffle
}

func TestMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the edit to the stored record", func(t *testing.T) {
		_, repo := newRepo(t)
		seedRaffle(t, repo)

		updated, err := repo.Mutate(ctx, "r1", func(raffle *models.Raffle) error {
			raffle.Title = "Edited"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Title)

		stored, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "Edited", stored.Title)
	})

	t.Run("retries on a concurrent write and keeps its state", func(t *testing.T) {
		client, repo := newRepo(t)
		seedRaffle(t, repo)

		calls := 0
		updated, err := repo.Mutate(ctx, "r1", func(raffle *models.Raffle) error {
			calls++
			if calls == 1 {
				// An allocation lands on the watched key while the edit
				// is in flight; the first EXEC must fail.
				racing := *raffle
				racing.SoldTickets = 5
				data, err := json.Marshal(&racing)
				require.NoError(t, err)
				require.NoError(t, client.Set(ctx, makeRaffleKey("r1"), data, 0).Err())
			}
			raffle.Title = "Edited"
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		assert.Equal(t, "Edited", updated.Title)
		// The racing counter advance survives the edit.
		assert.Equal(t, 5, updated.SoldTickets)

		stored, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 5, stored.SoldTickets)
	})

	t.Run("an error from fn commits nothing", func(t *testing.T) {
		_, repo := newRepo(t)
		seedRaffle(t, repo)

		_, err := repo.Mutate(ctx, "r1", func(raffle *models.Raffle) error {
			raffle.Title = "never"
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		stored, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "Draw", stored.Title)
	})

	t.Run("unknown raffle", func(t *testing.T) {
		_, repo := newRepo(t)
		_, err := repo.Mutate(ctx, "missing", func(*models.Raffle) error { return nil })
		assert.ErrorIs(t, err, repository.ErrRaffleNotFound)
	})

	t.Run("status change maintains the active index", func(t *testing.T) {
		_, repo := newRepo(t)
		seedRaffle(t, repo)

		_, err := repo.Mutate(ctx, "r1", func(raffle *models.Raffle) error {
			raffle.Status = models.RaffleStatusInactive
			return nil
		})
		require.NoError(t, err)

		active, err := repo.ListByStatus(ctx, models.RaffleStatusActive)
		require.NoError(t, err)
		assert.Empty(t, active)

		n, err := repo.CountByStatus(ctx, models.RaffleStatusActive)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
