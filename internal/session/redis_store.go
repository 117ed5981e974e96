package session

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore keeps sessions under prefix+token. A zero ttl stores them
// without expiry.
func NewRedisStore(client rueidis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) Save(ctx context.Context, token, userID string) error {
	set := r.client.B().Set().Key(r.key(token)).Value(userID)

	var cmd rueidis.Completed
	if seconds := int64(r.ttl / time.Second); seconds > 0 {
		cmd = set.ExSeconds(seconds).Build()
	} else {
		cmd = set.Build()
	}

	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	cmd := r.client.B().Get().Key(r.key(token)).Build()

	userID, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return userID, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	cmd := r.client.B().Del().Key(r.key(token)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}
