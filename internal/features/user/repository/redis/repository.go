package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"raffle-tool-backend/internal/features/user/models"
	"raffle-tool-backend/internal/features/user/repository"
)

const (
	keyPrefixUser      = "user:"
	keyPrefixUserPhone = "user:phone:"
	keyAllUsers        = "users:all"
)

type redisRepository struct {
	client redis.Cmdable
}

func NewRedisUserRepository(client redis.Cmdable) repository.UserRepository {
	return &redisRepository{client: client}
}

func makeUserKey(id string) string     { return keyPrefixUser + id }
func makePhoneKey(phone string) string { return keyPrefixUserPhone + phone }

func (r *redisRepository) Create(ctx context.Context, user *models.User) error {
	// SETNX on the phone index is the idempotency guard: only one of two
	// concurrent registrations with the same phone wins.
	ok, err := r.client.SetNX(ctx, makePhoneKey(user.Phone), user.ID, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrPhoneExists
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeUserKey(user.ID), data, 0)
	pipe.SAdd(ctx, keyAllUsers, user.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	data, err := r.client.Get(ctx, makeUserKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *redisRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	id, err := r.client.Get(ctx, makePhoneKey(phone)).Result()
	if err == redis.Nil {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *redisRepository) Count(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, keyAllUsers).Result()
}
