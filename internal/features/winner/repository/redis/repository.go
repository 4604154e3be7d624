package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"raffle-tool-backend/internal/features/winner/models"
	"raffle-tool-backend/internal/features/winner/repository"
)

const (
	winnerKeyPrefix  = "winner:"
	winnersByDateKey = "winners:by_date"
)

type winnerRepository struct {
	client redis.Cmdable
}

func NewRedisWinnerRepository(client redis.Cmdable) repository.WinnerRepository {
	return &winnerRepository{client: client}
}

func winnerKey(id string) string {
	return winnerKeyPrefix + id
}

func (r *winnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	data, err := json.Marshal(winner)
	if err != nil {
		return fmt.Errorf("marshal winner: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, winnerKey(winner.ID), data, 0)
	pipe.ZAdd(ctx, winnersByDateKey, redis.Z{
		Score:  float64(winner.Date.UnixNano()),
		Member: winner.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store winner: %w", err)
	}
	return nil
}

func (r *winnerRepository) GetByID(ctx context.Context, id string) (*models.Winner, error) {
	data, err := r.client.Get(ctx, winnerKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrWinnerNotFound
		}
		return nil, fmt.Errorf("get winner: %w", err)
	}

	var winner models.Winner
	if err := json.Unmarshal(data, &winner); err != nil {
		return nil, fmt.Errorf("unmarshal winner: %w", err)
	}
	return &winner, nil
}

func (r *winnerRepository) List(ctx context.Context) ([]*models.Winner, error) {
	ids, err := r.client.ZRevRange(ctx, winnersByDateKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Winner{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = winnerKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch winners: %w", err)
	}

	winners := make([]*models.Winner, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var winner models.Winner
		if err := json.Unmarshal([]byte(raw), &winner); err != nil {
			continue
		}
		winners = append(winners, &winner)
	}
	return winners, nil
}
