package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"raffle-tool-backend/internal/features/purchase/models"
	"raffle-tool-backend/internal/features/purchase/repository"
	rafflemodels "raffle-tool-backend/internal/features/raffle/models"
	rafflerepo "raffle-tool-backend/internal/features/raffle/repository"
)

const (
	keyPrefixRaffle         = "raffle:"
	keyPrefixPurchase       = "purchase:"
	keyPrefixUserPurchases  = "purchases:user:"
	keyPrefixRafflePurchase = "purchases:raffle:"
	keyPaidPurchases        = "purchases:paid"

	// Retry budget for the optimistic allocation loop. Contention on a single
	// raffle key resolves in a handful of rounds; exhausting the budget is
	// reported as ErrAllocationConflict.
	maxAllocateRetries = 32
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisPurchaseRepository(client *redis.Client) repository.PurchaseRepository {
	return &redisRepository{client: client}
}

func makeRaffleKey(id string) string   { return keyPrefixRaffle + id }
func makePurchaseKey(id string) string { return keyPrefixPurchase + id }
func makeUserKey(id string) string     { return keyPrefixUserPurchases + id }
func makeRaffleSetKey(id string) string {
	return keyPrefixRafflePurchase + id
}

// Allocate implements the allocation critical section with an optimistic
// WATCH on the raffle key: the raffle counter is read, validated, advanced
// and written back together with the purchase record in one MULTI/EXEC. A
// concurrent allocation against the same raffle fails the EXEC and is
// retried with fresh state.
func (r *redisRepository) Allocate(ctx context.Context, raffleID string, quantity int, build repository.BuildFunc) (*models.Purchase, error) {
	raffleKey := makeRaffleKey(raffleID)
	var purchase *models.Purchase

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, raffleKey).Bytes()
		if err == redis.Nil {
			return rafflerepo.ErrRaffleNotFound
		}
		if err != nil {
			return err
		}

		var raffle rafflemodels.Raffle
		if err := json.Unmarshal(data, &raffle); err != nil {
			return fmt.Errorf("failed to unmarshal raffle: %w", err)
		}

		if !raffle.IsActive() {
			return repository.ErrRaffleNotActive
		}
		if raffle.SoldTickets+quantity > raffle.TotalTickets {
			return repository.ErrCapacityExceeded
		}

		tickets := make([]int, quantity)
		for i := range tickets {
			tickets[i] = raffle.SoldTickets + i
		}

		p, err := build(&raffle, tickets)
		if err != nil {
			return err
		}

		raffle.SoldTickets += quantity
		raffle.UpdatedAt = p.CreatedAt

		raffleData, err := json.Marshal(&raffle)
		if err != nil {
			return err
		}
		purchaseData, err := json.Marshal(p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, raffleKey, raffleData, 0)
			pipe.Set(ctx, makePurchaseKey(p.ID), purchaseData, 0)
			pipe.ZAdd(ctx, makeUserKey(p.UserID), redis.Z{
				Score:  float64(p.CreatedAt.UnixNano()),
				Member: p.ID,
			})
			pipe.SAdd(ctx, makeRaffleSetKey(p.RaffleID), p.ID)
			if p.IsPaid() {
				pipe.ZAdd(ctx, keyPaidPurchases, redis.Z{
					Score:  float64(p.CreatedAt.Unix()),
					Member: p.ID,
				})
			}
			return nil
		})
		if err != nil {
			return err
		}

		purchase = p
		return nil
	}

	for attempt := 0; attempt < maxAllocateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, raffleKey)
		if err == nil {
			return purchase, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race against a concurrent allocation, retry on
			// fresh state.
			continue
		}
		return nil, err
	}

	return nil, repository.ErrAllocationConflict
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	data, err := r.client.Get(ctx, makePurchaseKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}

	var purchase models.Purchase
	if err := json.Unmarshal(data, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *redisRepository) MarkPaid(ctx context.Context, id string) (*models.Purchase, error) {
	purchaseKey := makePurchaseKey(id)
	var purchase *models.Purchase

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, purchaseKey).Bytes()
		if err == redis.Nil {
			return repository.ErrPurchaseNotFound
		}
		if err != nil {
			return err
		}

		var p models.Purchase
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.IsPaid() {
			return repository.ErrAlreadyPaid
		}

		p.PaymentStatus = models.PaymentStatusPaid
		updated, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, purchaseKey, updated, 0)
			pipe.ZAdd(ctx, keyPaidPurchases, redis.Z{
				Score:  float64(p.CreatedAt.Unix()),
				Member: p.ID,
			})
			return nil
		})
		if err != nil {
			return err
		}

		purchase = &p
		return nil
	}

	for attempt := 0; attempt < maxAllocateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, purchaseKey)
		if err == nil {
			return purchase, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, repository.ErrAllocationConflict
}

func (r *redisRepository) ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error) {
	// ZRevRange keeps created_at descending order.
	ids, err := r.client.ZRevRange(ctx, makeUserKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids, false)
}

func (r *redisRepository) ListByRaffle(ctx context.Context, raffleID string) ([]*models.Purchase, error) {
	ids, err := r.client.SMembers(ctx, makeRaffleSetKey(raffleID)).Result()
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids, true)
}

func (r *redisRepository) ListPaidSince(ctx context.Context, since time.Time) ([]*models.Purchase, error) {
	minScore := "-inf"
	if !since.IsZero() {
		minScore = strconv.FormatInt(since.Unix(), 10)
	}

	ids, err := r.client.ZRangeByScore(ctx, keyPaidPurchases, &redis.ZRangeBy{
		Min: minScore,
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids, false)
}

func (r *redisRepository) CountPaid(ctx context.Context) (int64, error) {
	return r.client.ZCard(ctx, keyPaidPurchases).Result()
}

func (r *redisRepository) fetch(ctx context.Context, ids []string, sortByDate bool) ([]*models.Purchase, error) {
	if len(ids) == 0 {
		return []*models.Purchase{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makePurchaseKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	purchases := make([]*models.Purchase, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			continue
		}
		var purchase models.Purchase
		if err := json.Unmarshal([]byte(s), &purchase); err != nil {
			return nil, err
		}
		purchases = append(purchases, &purchase)
	}

	if sortByDate {
		sort.Slice(purchases, func(i, j int) bool {
			return purchases[i].CreatedAt.After(purchases[j].CreatedAt)
		})
	}
	return purchases, nil
}
