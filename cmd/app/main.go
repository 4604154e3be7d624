package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "raffle-tool-backend/docs"
	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/common/middleware"
	leaderboardhttp "raffle-tool-backend/internal/features/leaderboard/delivery/http"
	leaderboardservice "raffle-tool-backend/internal/features/leaderboard/service"
	purchasehttp "raffle-tool-backend/internal/features/purchase/delivery/http"
	purchaserepo "raffle-tool-backend/internal/features/purchase/repository"
	purchasememory "raffle-tool-backend/internal/features/purchase/repository/memory"
	purchaseredis "raffle-tool-backend/internal/features/purchase/repository/redis"
	purchaseservice "raffle-tool-backend/internal/features/purchase/service"
	rafflehttp "raffle-tool-backend/internal/features/raffle/delivery/http"
	rafflerepo "raffle-tool-backend/internal/features/raffle/repository"
	rafflememory "raffle-tool-backend/internal/features/raffle/repository/memory"
	raffleredis "raffle-tool-backend/internal/features/raffle/repository/redis"
	raffleservice "raffle-tool-backend/internal/features/raffle/service"
	statshttp "raffle-tool-backend/internal/features/stats/delivery/http"
	statsservice "raffle-tool-backend/internal/features/stats/service"
	userhttp "raffle-tool-backend/internal/features/user/delivery/http"
	userrepo "raffle-tool-backend/internal/features/user/repository"
	usermemory "raffle-tool-backend/internal/features/user/repository/memory"
	userredis "raffle-tool-backend/internal/features/user/repository/redis"
	userservice "raffle-tool-backend/internal/features/user/service"
	winnerhttp "raffle-tool-backend/internal/features/winner/delivery/http"
	winnerrepo "raffle-tool-backend/internal/features/winner/repository"
	winnermemory "raffle-tool-backend/internal/features/winner/repository/memory"
	winnerredis "raffle-tool-backend/internal/features/winner/repository/redis"
	winnerservice "raffle-tool-backend/internal/features/winner/service"
	platformredis "raffle-tool-backend/internal/platform/redis"
)

// @title           Raffle Tool API
// @version         1.0
// @description     API server for the number draw raffle platform.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
// @description Shared admin token for raffle administration endpoints

// @tag.name raffles
// @tag.description Raffle management and ticket availability

// @tag.name purchases
// @tag.description Ticket purchases and payment confirmation

// @tag.name users
// @tag.description Phone-based user registration

// @tag.name rankings
// @tag.description Buyer leaderboards

// @tag.name winners
// @tag.description Published draw results

// @tag.name stats
// @tag.description Platform counters

type stores struct {
	raffles   rafflerepo.RaffleRepository
	purchases purchaserepo.PurchaseRepository
	users     userrepo.UserRepository
	winners   winnerrepo.WinnerRepository
	cache     *cache.CacheService
	close     func()
}

func main() {
	cfg := config.Load()

	logger.Init("raffle-tool-backend", cfg.Debug)
	logger.Info().
		Str("store_driver", cfg.Store.Driver).
		Bool("debug", cfg.Debug).
		Msg("Starting raffle tool backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open stores")
	}
	defer st.close()

	location, err := time.LoadLocation(cfg.Leaderboard.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Leaderboard.Timezone).Msg("Invalid leaderboard timezone")
	}

	raffleSvc := raffleservice.NewRaffleService(st.raffles, st.cache, cfg)
	userSvc := userservice.NewUserService(st.users)
	purchaseSvc := purchaseservice.NewPurchaseService(st.purchases, st.users, st.cache, cfg)
	leaderboardSvc := leaderboardservice.NewLeaderboardService(st.purchases, st.users, st.cache, cfg, location)
	winnerSvc := winnerservice.NewWinnerService(st.winners, st.users, st.raffles)
	statsSvc := statsservice.NewStatsService(st.raffles, st.users, st.purchases, st.cache, cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Admin-Token", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	adminGuard := middleware.RequireAdmin(cfg.Admin.Token)

	v1 := router.Group("/api/v1")
	rafflehttp.NewRaffleHandler(raffleSvc).RegisterRoutes(v1, adminGuard)
	purchasehttp.NewPurchaseHandler(purchaseSvc).RegisterRoutes(v1)
	userhttp.NewUserHandler(userSvc).RegisterRoutes(v1)
	leaderboardhttp.NewLeaderboardHandler(leaderboardSvc).RegisterRoutes(v1)
	winnerhttp.NewWinnerHandler(winnerSvc).RegisterRoutes(v1, adminGuard)
	statshttp.NewStatsHandler(statsSvc).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("Server exited")
}

// openStores wires the persistence layer for the configured driver. The
// memory driver keeps everything in process and runs without Redis.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case "redis":
		client, err := platformredis.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return &stores{
			raffles:   raffleredis.NewRedisRaffleRepository(client.Client),
			purchases: purchaseredis.NewRedisPurchaseRepository(client.Client),
			users:     userredis.NewRedisUserRepository(client.Client),
			winners:   winnerredis.NewRedisWinnerRepository(client.Client),
			cache:     cache.NewCacheService(client.Client),
			close: func() {
				if err := client.Close(); err != nil {
					logger.Warn().Err(err).Msg("Redis close failed")
				}
			},
		}, nil

	case "memory":
		raffles := rafflememory.NewMemoryRaffleRepository()
		return &stores{
			raffles:   raffles,
			purchases: purchasememory.NewMemoryPurchaseRepository(raffles),
			users:     usermemory.NewMemoryUserRepository(),
			winners:   winnermemory.NewMemoryWinnerRepository(),
			cache:     nil,
			close:     func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
