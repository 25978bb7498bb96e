package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"koon7r-storefront/models"
)

// SessionTTL is how long an idle Redis cart survives
const SessionTTL = 48 * time.Hour

// Store persists cart lines per session id
type Store interface {
	Load(ctx context.Context, sessionID string) ([]models.CartLineItem, error)
	Save(ctx context.Context, sessionID string, lines []models.CartLineItem) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartLineItem
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartLineItem)}
}

// Ensure stores implement Store
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// Load returns the saved lines, or nil for an unknown session
func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]models.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	if lines == nil {
		return nil, nil
	}
	out := make([]models.CartLineItem, len(lines))
	copy(out, lines)
	return out, nil
}

// Save replaces the session's lines
func (s *MemoryStore) Save(_ context.Context, sessionID string, lines []models.CartLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(lines) == 0 {
		delete(s.carts, sessionID)
		return nil
	}
	saved := make([]models.CartLineItem, len(lines))
	copy(saved, lines)
	s.carts[sessionID] = saved
	return nil
}

// Delete forgets the session's cart
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// RedisStore keeps carts as JSON values with a sliding TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store from a redis:// URL
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: SessionTTL}, nil
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load returns the saved lines, or nil when the key is missing or expired
func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis cart load error: %w", err)
	}

	var lines []models.CartLineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return lines, nil
}

// Save replaces the session's lines and refreshes the TTL
func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []models.CartLineItem) error {
	if len(lines) == 0 {
		return s.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis cart save error: %w", err)
	}
	return nil
}

// Delete removes the session's cart
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis cart delete error: %w", err)
	}
	return nil
}
