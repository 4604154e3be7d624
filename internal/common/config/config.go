package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Store struct {
		// Driver selects the persistence backend: "redis" or "memory".
		// The memory driver keeps everything in process and is meant for
		// local development and tests.
		Driver string `env:"STORE_DRIVER" envDefault:"redis"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Payment struct {
		// AutoConfirm settles purchases synchronously: new purchases are
		// created already paid. When false purchases start pending and are
		// confirmed through the payment confirmation endpoint.
		AutoConfirm bool `env:"PAYMENT_AUTO_CONFIRM" envDefault:"true"`
	}

	Leaderboard struct {
		// Timezone defines the calendar day for the daily ranking window.
		Timezone string `env:"LEADERBOARD_TIMEZONE" envDefault:"UTC"`
		Limit    int    `env:"LEADERBOARD_LIMIT" envDefault:"10"`
	}

	Cache struct {
		// TTL of zero disables caching for that read path.
		RaffleTTL      time.Duration `env:"CACHE_RAFFLE_TTL" envDefault:"30s"`
		LeaderboardTTL time.Duration `env:"CACHE_LEADERBOARD_TTL" envDefault:"0"`
		StatsTTL       time.Duration `env:"CACHE_STATS_TTL" envDefault:"1m"`
	}

	Admin struct {
		// Token guards the raffle administration endpoints. Empty disables
		// admin routes entirely.
		Token string `env:"ADMIN_TOKEN" envDefault:""`
	}
}

func Load() *Config {
	// Missing .env is fine, production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
