package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a short code is unknown or expired.
var ErrNotFound = errors.New("share code not found")

// Store keeps encoded share states under short codes.
type Store interface {
	Put(ctx context.Context, code, encoded string, ttl time.Duration) error
	Get(ctx context.Context, code string) (string, error)
}

// NewCode returns a fresh short code.
func NewCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewStore builds the store selected by cfg.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Store {
	case StoreMemory, "":
		return NewMemoryStore(), nil
	case StoreRedis:
		return NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})), nil
	default:
		return nil, fmt.Errorf("unknown share store: %s", cfg.Store)
	}
}

// MemoryStore is an in-process store. Codes do not survive a restart.
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (m *MemoryStore) Put(_ context.Context, code, encoded string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	m.items.Set(code, encoded, ttl)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (string, error) {
	v, ok := m.items.Get(code)
	if !ok {
		return "", ErrNotFound
	}
	return v.(string), nil
}

// RedisStore keeps codes in redis so every API replica can resolve them.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "share:"}
}

func (r *RedisStore) Put(ctx context.Context, code, encoded string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.prefix+code, encoded, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store share code: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, code string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read share code: %w", err)
	}
	return v, nil
}

// Ping checks the redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
