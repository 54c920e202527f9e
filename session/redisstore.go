package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisSessionKey = "schooltrack:console:session"

// RedisStore keeps the session as one JSON value under a single key, for
// deployments where the console shell and its tooling run as separate
// processes sharing a session. A single SET keeps writes atomic from the
// readers' perspective.
type RedisStore struct {
	rdb *redis.Client
	key string
	ctx context.Context
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKey overrides the redis key the session is stored under.
func WithKey(key string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.key = key
	}
}

// NewRedisStore creates a store backed by the redis instance at addr.
func NewRedisStore(addr string, options ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		key: redisSessionKey,
		ctx: context.Background(),
	}
	for _, opt := range options {
		opt(rs)
	}
	return rs
}

func (rs *RedisStore) Save(s Session) error {
	if !s.Complete() {
		return IncompleteSessionErr
	}
	data, err := json.Marshal(toStored(s))
	if err != nil {
		return errors.Wrap(err, "[RedisStore.Save] marshal session")
	}
	// Let redis drop the key once the session can no longer be valid.
	ttl := time.Until(s.ExpiresAt)
	if ttl < 0 {
		ttl = 0
	}
	if err := rs.rdb.Set(rs.ctx, rs.key, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Save] set session key")
	}
	return nil
}

func (rs *RedisStore) Load() (Session, bool) {
	data, err := rs.rdb.Get(rs.ctx, rs.key).Bytes()
	if err != nil {
		return Session{}, false
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return Session{}, false
	}
	s := fromStored(stored)
	if !s.Complete() {
		return Session{}, false
	}
	return s, true
}

func (rs *RedisStore) Clear() error {
	if err := rs.rdb.Del(rs.ctx, rs.key).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Clear] delete session key")
	}
	return nil
}

// Close releases the underlying redis connection.
func (rs *RedisStore) Close() error {
	return rs.rdb.Close()
}
