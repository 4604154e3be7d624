package service

import (
	"context"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	apperrors "raffle-tool-backend/internal/common/errors"
	purchaserepo "raffle-tool-backend/internal/features/purchase/repository"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflerepo "raffle-tool-backend/internal/features/raffle/repository"
	"raffle-tool-backend/internal/features/stats/models"
	userrepo "raffle-tool-backend/internal/features/user/repository"
)

const statsCacheKey = "stats"

type StatsService interface {
	Get(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	raffles   rafflerepo.RaffleRepository
	users     userrepo.UserRepository
	purchases purchaserepo.PurchaseRepository
	cache     *cache.CacheService
	config    *config.Config
}

func NewStatsService(
	raffles rafflerepo.RaffleRepository,
	users userrepo.UserRepository,
	purchases purchaserepo.PurchaseRepository,
	cacheService *cache.CacheService,
	cfg *config.Config,
) StatsService {
	return &statsService{
		raffles:   raffles,
		users:     users,
		purchases: purchases,
		cache:     cacheService,
		config:    cfg,
	}
}

func (s *statsService) Get(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := s.cache.GetOrSet(ctx, statsCacheKey, &stats, s.config.Cache.StatsTTL, func() (interface{}, error) {
		return s.collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *statsService) collect(ctx context.Context) (*models.Stats, error) {
	total, err := s.raffles.Count(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count raffles", err)
	}
	active, err := s.raffles.CountByStatus(ctx, rafflemodels.RaffleStatusActive)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count active raffles", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count users", err)
	}
	paid, err := s.purchases.CountPaid(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count purchases", err)
	}

	return &models.Stats{
		TotalRaffles:   total,
		ActiveRaffles:  active,
		TotalUsers:     users,
		TotalPurchases: paid,
	}, nil
}
