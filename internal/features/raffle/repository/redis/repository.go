package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/features/raffle/repository"
)

const (
	keyPrefixRaffle  = "raffle:"
	keyAllRaffles    = "raffles:all"
	keyActiveRaffles = "raffles:active"

	maxMutateRetries = 32
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRaffleRepository(client *redis.Client) repository.RaffleRepository {
	return &redisRepository{client: client}
}

func makeRaffleKey(id string) string {
	return keyPrefixRaffle + id
}

func (r *redisRepository) Create(ctx context.Context, raffle *models.Raffle) error {
	data, err := json.Marshal(raffle)
	if err != nil {
		return fmt.Errorf("failed to marshal raffle: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeRaffleKey(raffle.ID), data, 0)
	pipe.SAdd(ctx, keyAllRaffles, raffle.ID)
	if raffle.Status == models.RaffleStatusActive {
		pipe.SAdd(ctx, keyActiveRaffles, raffle.ID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Raffle, error) {
	data, err := r.client.Get(ctx, makeRaffleKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrRaffleNotFound
	}
	if err != nil {
		return nil, err
	}

	var raffle models.Raffle
	if err := json.Unmarshal(data, &raffle); err != nil {
		return nil, err
	}
	return &raffle, nil
}

// Mutate edits the raffle under an optimistic WATCH on its key, the same
// exclusion the purchase allocator uses. A write landing between the read
// and the EXEC fails the transaction and the edit is retried on fresh
// state, so a concurrent allocation's counter advance is never overwritten.
func (r *redisRepository) Mutate(ctx context.Context, id string, fn func(raffle *models.Raffle) error) (*models.Raffle, error) {
	key := makeRaffleKey(id)
	var result *models.Raffle

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return repository.ErrRaffleNotFound
		}
		if err != nil {
			return err
		}

		var raffle models.Raffle
		if err := json.Unmarshal(data, &raffle); err != nil {
			return err
		}

		if err := fn(&raffle); err != nil {
			return err
		}

		updated, err := json.Marshal(&raffle)
		if err != nil {
			return fmt.Errorf("failed to marshal raffle: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			if raffle.Status == models.RaffleStatusActive {
				pipe.SAdd(ctx, keyActiveRaffles, raffle.ID)
			} else {
				pipe.SRem(ctx, keyActiveRaffles, raffle.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = &raffle
		return nil
	}

	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, repository.ErrMutationConflict
}

func (r *redisRepository) List(ctx context.Context) ([]*models.Raffle, error) {
	return r.listSet(ctx, keyAllRaffles)
}

func (r *redisRepository) ListByStatus(ctx context.Context, status models.RaffleStatus) ([]*models.Raffle, error) {
	if status == models.RaffleStatusActive {
		return r.listSet(ctx, keyActiveRaffles)
	}

	all, err := r.listSet(ctx, keyAllRaffles)
	if err != nil {
		return nil, err
	}
	filtered := make([]*models.Raffle, 0, len(all))
	for _, raffle := range all {
		if raffle.Status == status {
			filtered = append(filtered, raffle)
		}
	}
	return filtered, nil
}

func (r *redisRepository) Count(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, keyAllRaffles).Result()
}

func (r *redisRepository) CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error) {
	if status == models.RaffleStatusActive {
		return r.client.SCard(ctx, keyActiveRaffles).Result()
	}

	raffles, err := r.ListByStatus(ctx, status)
	if err != nil {
		return 0, err
	}
	return int64(len(raffles)), nil
}

func (r *redisRepository) listSet(ctx context.Context, setKey string) ([]*models.Raffle, error) {
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Raffle{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeRaffleKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	raffles := make([]*models.Raffle, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			// Index entry without a record, skip.
			continue
		}
		var raffle models.Raffle
		if err := json.Unmarshal([]byte(s), &raffle); err != nil {
			return nil, err
		}
		raffles = append(raffles, &raffle)
	}

	sort.Slice(raffles, func(i, j int) bool {
		return raffles[i].CreatedAt.After(raffles[j].CreatedAt)
	})
	return raffles, nil
}
