package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/common/config"
	"raffle-tool-backend/internal/features/leaderboard/models"
	purchasemodels "raffle-tool-backend/internal/features/purchase/models"
	purchasememory "raffle-tool-backend/internal/features/purchase/repository/memory"
	purchaseservice "raffle-tool-backend/internal/features/purchase/service"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflememory "raffle-tool-backend/internal/features/raffle/repository/memory"
	usermodels "raffle-tool-backend/internal/features/user/models"
	usermemory "raffle-tool-backend/internal/features/user/repository/memory"
)

type fixture struct {
	raffles   *rafflememory.Repository
	purchases *purchasememory.Repository
	users     *usermemory.Repository
	buy       purchaseservice.PurchaseService
	service   LeaderboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	raffles := rafflememory.NewMemoryRaffleRepository()
	purchases := purchasememory.NewMemoryPurchaseRepository(raffles)
	users := usermemory.NewMemoryUserRepository()

	cfg := &config.Config{}
	cfg.Payment.AutoConfirm = true
	cfg.Leaderboard.Limit = 10

	f := &fixture{
		raffles:   raffles,
		purchases: purchases,
		users:     users,
		buy:       purchaseservice.NewPurchaseService(purchases, users, nil, cfg),
		service:   NewLeaderboardService(purchases, users, nil, cfg, time.UTC),
	}

	require.NoError(t, raffles.Create(context.Background(), &rafflemodels.Raffle{
		ID:             "r1",
		Title:          "Draw",
		PricePerTicket: 2,
		TotalTickets:   10000,
		Status:         rafflemodels.RaffleStatusActive,
	}))
	return f
}

func (f *fixture) seedUser(t *testing.T, id, phone, name string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &usermodels.User{
		ID: id, Phone: phone, Name: name, CreatedAt: time.Now(),
	}))
}

func (f *fixture) purchase(t *testing.T, userID string, quantity int) {
	t.Helper()
	_, err := f.buy.Create(context.Background(), &purchasemodels.PurchaseCreate{
		UserID: userID, RaffleID: "r1", Quantity: quantity,
	})
	require.NoError(t, err)
}

func TestTopBuyers(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks by total spent with summed totals", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "u1", "5511999990001", "Ana")
		f.seedUser(t, "u2", "5511999990002", "Bruno")
		f.seedUser(t, "u3", "5511999990003", "")

		f.purchase(t, "u1", 10)
		f.purchase(t, "u1", 5)
		f.purchase(t, "u2", 30)
		f.purchase(t, "u3", 1)

		got, err := f.service.TopBuyers(ctx, models.WindowAllTime, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "u2", got[0].UserID)
		assert.Equal(t, 30, got[0].TotalTickets)
		assert.Equal(t, 60.0, got[0].TotalSpent)
		assert.Equal(t, "Bruno", got[0].UserName)

		assert.Equal(t, "u1", got[1].UserID)
		assert.Equal(t, 15, got[1].TotalTickets)
		assert.Equal(t, 30.0, got[1].TotalSpent)

		// Nameless buyers fall back to their phone.
		assert.Equal(t, "u3", got[2].UserID)
		assert.Equal(t, "5511999990003", got[2].UserName)
	})

	t.Run("equal spend breaks ties deterministically by user id", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "ub", "5511999990002", "B")
		f.seedUser(t, "ua", "5511999990001", "A")

		f.purchase(t, "ub", 10)
		f.purchase(t, "ua", 10)

		got, err := f.service.TopBuyers(ctx, models.WindowAllTime, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ua", got[0].UserID)
		assert.Equal(t, "ub", got[1].UserID)
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			id := string(rune('a' + i))
			f.seedUser(t, id, "551199999000"+id, "")
			f.purchase(t, id, i+1)
		}

		got, err := f.service.TopBuyers(ctx, models.WindowAllTime, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 5, got[0].TotalTickets)
		assert.Equal(t, 4, got[1].TotalTickets)
	})

	t.Run("pending purchases are excluded", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "u1", "5511999990001", "Ana")

		cfg := &config.Config{}
		cfg.Payment.AutoConfirm = false
		pendingBuy := purchaseservice.NewPurchaseService(f.purchases, f.users, nil, cfg)

		_, err := pendingBuy.Create(ctx, &purchasemodels.PurchaseCreate{
			UserID: "u1", RaffleID: "r1", Quantity: 10,
		})
		require.NoError(t, err)

		got, err := f.service.TopBuyers(ctx, models.WindowAllTime, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown window is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.TopBuyers(ctx, models.Window("yearly"), 0)
		require.Error(t, err)
	})

	t.Run("empty ledger yields an empty ranking", func(t *testing.T) {
		f := newFixture(t)
		got, err := f.service.TopBuyers(ctx, models.WindowToday, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("today window includes fresh purchases", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "u1", "5511999990001", "Ana")
		f.purchase(t, "u1", 3)

		got, err := f.service.TopBuyers(ctx, models.WindowToday, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].TotalTickets)
	})

	t.Run("today window drops yesterday's purchases", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "u1", "5511999990001", "Ana")

		// Yesterday's purchase is written straight through the allocator so
		// its CreatedAt lands before today's local midnight.
		_, err := f.purchases.Allocate(ctx, "r1", 5,
			func(raffle *rafflemodels.Raffle, tickets []int) (*purchasemodels.Purchase, error) {
				return &purchasemodels.Purchase{
					ID:            "p-yesterday",
					UserID:        "u1",
					RaffleID:      "r1",
					Tickets:       tickets,
					Quantity:      5,
					TotalAmount:   float64(5) * raffle.PricePerTicket,
					PaymentStatus: purchasemodels.PaymentStatusPaid,
					CreatedAt:     time.Now().Add(-24 * time.Hour),
				}, nil
			})
		require.NoError(t, err)

		f.purchase(t, "u1", 3)

		today, err := f.service.TopBuyers(ctx, models.WindowToday, 0)
		require.NoError(t, err)
		require.Len(t, today, 1)
		assert.Equal(t, 3, today[0].TotalTickets)
		assert.Equal(t, 6.0, today[0].TotalSpent)

		allTime, err := f.service.TopBuyers(ctx, models.WindowAllTime, 0)
		require.NoError(t, err)
		require.Len(t, allTime, 1)
		assert.Equal(t, 8, allTime[0].TotalTickets)
		assert.Equal(t, 16.0, allTime[0].TotalSpent)
	})
}
