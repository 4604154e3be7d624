package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/features/purchase/models"
	purchasememory "raffle-tool-backend/internal/features/purchase/repository/memory"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflememory "raffle-tool-backend/internal/features/raffle/repository/memory"
	usermodels "raffle-tool-backend/internal/features/user/models"
	usermemory "raffle-tool-backend/internal/features/user/repository/memory"
)

type fixture struct {
	raffles   *rafflememory.Repository
	purchases *purchasememory.Repository
	users     *usermemory.Repository
	service   PurchaseService
}

func newFixture(t *testing.T, autoConfirm bool) *fixture {
	t.Helper()

	raffles := rafflememory.NewMemoryRaffleRepository()
	purchases := purchasememory.NewMemoryPurchaseRepository(raffles)
	users := usermemory.NewMemoryUserRepository()

	cfg := &config.Config{}
	cfg.Payment.AutoConfirm = autoConfirm

	return &fixture{
		raffles:   raffles,
		purchases: purchases,
		users:     users,
		service:   NewPurchaseService(purchases, users, nil, cfg),
	}
}

func (f *fixture) seedRaffle(t *testing.T, raffle *rafflemodels.Raffle) {
	t.Helper()
	if raffle.Status == "" {
		raffle.Status = rafflemodels.RaffleStatusActive
	}
	require.NoError(t, f.raffles.Create(context.Background(), raffle))
}

func (f *fixture) seedUser(t *testing.T, id, phone string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &usermodels.User{
		ID:        id,
		Phone:     phone,
		CreatedAt: time.Now(),
	}))
}

func errorCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestPurchaseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates contiguous ticket blocks in order", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{
			ID:             "r1",
			Title:          "Draw",
			PricePerTicket: 2.0,
			TotalTickets:   100,
			BonusTiers: rafflemodels.BonusTiers{
				{Quantity: 50, Boxes: 1},
				{Quantity: 100, Boxes: 3},
			}.Normalized(),
		})

		first, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 10})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, first.Tickets)
		assert.Equal(t, 20.0, first.TotalAmount)
		assert.Equal(t, 0, first.BonusBoxes)
		assert.True(t, first.IsPaid())

		second, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 60})
		require.NoError(t, err)
		assert.Equal(t, 10, second.Tickets[0])
		assert.Equal(t, 69, second.Tickets[59])
		assert.Equal(t, 120.0, second.TotalAmount)
		assert.Equal(t, 1, second.BonusBoxes)

		third, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 30})
		require.NoError(t, err)
		assert.Equal(t, 70, third.Tickets[0])
		assert.Equal(t, 99, third.Tickets[29])

		raffle, err := f.raffles.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 100, raffle.SoldTickets)
		assert.Equal(t, 0, raffle.Remaining())
	})

	t.Run("rejects non-positive quantity without touching state", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 10})

		for _, q := range []int{0, -1, -100} {
			_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: q})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidQuantity, errorCode(t, err))
		}

		raffle, err := f.raffles.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 0, raffle.SoldTickets)

		purchases, err := f.purchases.ListByRaffle(ctx, "r1")
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})

	t.Run("rejects oversell at the exact boundary", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 10})

		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 7})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 4})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeCapacityExceeded, errorCode(t, err))

		// The failed attempt must not consume tickets.
		last, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, []int{7, 8, 9}, last.Tickets)
	})

	t.Run("rejects inactive raffles", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{
			ID:             "r1",
			PricePerTicket: 1,
			TotalTickets:   10,
			Status:         rafflemodels.RaffleStatusInactive,
		})

		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRaffleNotActive, errorCode(t, err))
	})

	t.Run("rejects unknown raffle and unknown user", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 10})

		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "nope", Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRaffleNotFound, errorCode(t, err))

		_, err = f.service.Create(ctx, &models.PurchaseCreate{UserID: "ghost", RaffleID: "r1", Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUserNotFound, errorCode(t, err))
	})

	t.Run("total amount snapshots the price at purchase time", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", Title: "Draw", PricePerTicket: 2, TotalTickets: 100})

		before, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 10.0, before.TotalAmount)

		_, err = f.raffles.Mutate(ctx, "r1", func(raffle *rafflemodels.Raffle) error {
			raffle.PricePerTicket = 4
			return nil
		})
		require.NoError(t, err)

		after, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 20.0, after.TotalAmount)

		// The earlier record keeps its original amount.
		kept, err := f.service.GetByID(ctx, before.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, kept.TotalAmount)
	})

	t.Run("concurrent purchases split the pool without overlap", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 200})

		const buyers = 20
		const each = 10

		var wg sync.WaitGroup
		results := make(chan *models.Purchase, buyers)
		for i := 0; i < buyers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: each})
				if err == nil {
					results <- p
				}
			}()
		}
		wg.Wait()
		close(results)

		var all []int
		count := 0
		for p := range results {
			count++
			all = append(all, p.Tickets...)
		}
		require.Equal(t, buyers, count)
		require.Len(t, all, buyers*each)

		sort.Ints(all)
		for i, ticket := range all {
			assert.Equal(t, i, ticket, "tickets must cover the pool exactly once")
		}

		// Pool is exhausted now.
		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeCapacityExceeded, errorCode(t, err))
	})
}

func TestPurchaseConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("pending purchase settles once", func(t *testing.T) {
		f := newFixture(t, false)
		f.seedUser(t, "u1", "5511999990001")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 10})

		purchase, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, purchase.PaymentStatus)

		// Pending tickets are reserved but not counted as sold.
		sold, err := f.service.SoldTickets(ctx, "r1")
		require.NoError(t, err)
		assert.Empty(t, sold)

		confirmed, err := f.service.ConfirmPayment(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, confirmed.PaymentStatus)

		sold, err = f.service.SoldTickets(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, sold)

		_, err = f.service.ConfirmPayment(ctx, purchase.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err))
	})

	t.Run("unknown purchase", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.service.ConfirmPayment(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodePurchaseNotFound, errorCode(t, err))
	})
}

func TestPurchaseQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("sold tickets are sorted and paid-only", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedUser(t, "u2", "5511999990002")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 50})

		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 5})
		require.NoError(t, err)
		_, err = f.service.Create(ctx, &models.PurchaseCreate{UserID: "u2", RaffleID: "r1", Quantity: 5})
		require.NoError(t, err)

		sold, err := f.service.SoldTickets(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sold)
	})

	t.Run("list by user returns only that user's purchases", func(t *testing.T) {
		f := newFixture(t, true)
		f.seedUser(t, "u1", "5511999990001")
		f.seedUser(t, "u2", "5511999990002")
		f.seedRaffle(t, &rafflemodels.Raffle{ID: "r1", PricePerTicket: 1, TotalTickets: 50})

		_, err := f.service.Create(ctx, &models.PurchaseCreate{UserID: "u1", RaffleID: "r1", Quantity: 2})
		require.NoError(t, err)
		_, err = f.service.Create(ctx, &models.PurchaseCreate{UserID: "u2", RaffleID: "r1", Quantity: 3})
		require.NoError(t, err)

		mine, err := f.service.ListByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "u1", mine[0].UserID)
		assert.Equal(t, 2, mine[0].Quantity)
	})
}
