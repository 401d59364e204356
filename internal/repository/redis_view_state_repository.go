package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

const (
	pageKeyPrefix   = "console:page:"
	viewedKeyPrefix = "console:viewed:"
)

type redisViewStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisViewStateRepository stores pages as strings with ttl and viewed
// ticket ids as sets.
func NewRedisViewStateRepository(client *redis.Client, ttl time.Duration) ViewStateRepository {
	return &redisViewStateRepository{client: client, ttl: ttl}
}

func (r *redisViewStateRepository) CurrentPage(ctx context.Context, scope string) (int, bool, error) {
	page, err := r.client.Get(ctx, pageKeyPrefix+scope).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return page, true, nil
}

func (r *redisViewStateRepository) SaveCurrentPage(ctx context.Context, scope string, page int) error {
	return r.client.Set(ctx, pageKeyPrefix+scope, page, r.ttl).Err()
}

func (r *redisViewStateRepository) ClearCurrentPage(ctx context.Context, scope string) error {
	return r.client.Del(ctx, pageKeyPrefix+scope).Err()
}

func (r *redisViewStateRepository) ViewedTicketIDs(ctx context.Context, owner string) ([]domain.ID, error) {
	members, err := r.client.SMembers(ctx, viewedKeyPrefix+owner).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(members)
	ids := make([]domain.ID, 0, len(members))
	for _, m := range members {
		ids = append(ids, domain.ID(m))
	}
	return ids, nil
}

func (r *redisViewStateRepository) MarkTicketViewed(ctx context.Context, owner string, id domain.ID) error {
	return r.client.SAdd(ctx, viewedKeyPrefix+owner, id.String()).Err()
}

func (r *redisViewStateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
