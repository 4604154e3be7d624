package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/features/leaderboard/models"
	purchaserepo "raffle-tool-backend/internal/features/purchase/repository"
	userrepo "raffle-tool-backend/internal/features/user/repository"
)

type LeaderboardService interface {
	// TopBuyers folds paid purchases within the window into per-buyer
	// totals, ranked by total spent descending. Ties break on total tickets
	// descending, then user id ascending, so rankings are deterministic.
	TopBuyers(ctx context.Context, window models.Window, limit int) ([]*models.BuyerSummary, error)
}

type leaderboardService struct {
	purchases purchaserepo.PurchaseRepository
	users     userrepo.UserRepository
	cache     *cache.CacheService
	config    *config.Config
	location  *time.Location
}

func NewLeaderboardService(
	purchases purchaserepo.PurchaseRepository,
	users userrepo.UserRepository,
	cache *cache.CacheService,
	config *config.Config,
	location *time.Location,
) LeaderboardService {
	if location == nil {
		location = time.UTC
	}
	return &leaderboardService{
		purchases: purchases,
		users:     users,
		cache:     cache,
		config:    config,
		location:  location,
	}
}

func (s *leaderboardService) TopBuyers(ctx context.Context, window models.Window, limit int) ([]*models.BuyerSummary, error) {
	if limit <= 0 {
		limit = s.config.Leaderboard.Limit
	}

	var summaries []*models.BuyerSummary
	cacheKey := fmt.Sprintf("leaderboard:%s", window)

	// Cached rankings are at most Cache.LeaderboardTTL stale; the default
	// TTL of zero disables caching and every read reflects the ledger.
	err := s.cache.GetOrSet(ctx, cacheKey, &summaries, s.config.Cache.LeaderboardTTL, func() (interface{}, error) {
		return s.aggregate(ctx, window)
	})
	if err != nil {
		return nil, err
	}

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *leaderboardService) aggregate(ctx context.Context, window models.Window) ([]*models.BuyerSummary, error) {
	var since time.Time
	switch window {
	case models.WindowAllTime:
		// zero time: the whole ledger
	case models.WindowToday:
		since = s.startOfToday()
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeValidation, "unknown ranking window: %s", window)
	}

	purchases, err := s.purchases.ListPaidSince(ctx, since)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list paid purchases", err)
	}

	byUser := make(map[string]*models.BuyerSummary)
	for _, purchase := range purchases {
		summary, ok := byUser[purchase.UserID]
		if !ok {
			summary = &models.BuyerSummary{UserID: purchase.UserID}
			byUser[purchase.UserID] = summary
		}
		summary.TotalTickets += purchase.Quantity
		summary.TotalSpent += purchase.TotalAmount
	}

	summaries := make([]*models.BuyerSummary, 0, len(byUser))
	for _, summary := range byUser {
		s.enrich(ctx, summary)
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.TotalSpent != b.TotalSpent {
			return a.TotalSpent > b.TotalSpent
		}
		if a.TotalTickets != b.TotalTickets {
			return a.TotalTickets > b.TotalTickets
		}
		return a.UserID < b.UserID
	})

	return summaries, nil
}

func (s *leaderboardService) enrich(ctx context.Context, summary *models.BuyerSummary) {
	user, err := s.users.GetByID(ctx, summary.UserID)
	if err != nil {
		if !errors.Is(err, userrepo.ErrUserNotFound) {
			logger.Warn().Err(err).Str("user_id", summary.UserID).Msg("ranking user lookup failed")
		}
		return
	}
	summary.UserPhone = user.Phone
	summary.UserName = user.Label()
}

func (s *leaderboardService) startOfToday() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}
