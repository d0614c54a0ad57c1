package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-planner/internal/logger"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a ResponseStore that has no entry for a key.
var ErrCacheMiss = errors.New("cache miss")

// ResponseStore persists raw generator responses by key.
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	rdb *goredis.Client
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*redisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}

// CachedGenerator wraps a TextGenerator and reuses earlier responses for identical
// model and prompt pairs. Cache errors never fail a generation.
type CachedGenerator struct {
	next  TextGenerator
	store ResponseStore
	model string
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedGenerator(next TextGenerator, store ResponseStore, model string, ttl time.Duration, log *logger.Logger) *CachedGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedGenerator{next: next, store: store, model: model, ttl: ttl, log: log.With("component", "CachedGenerator")}
}

// CacheKey derives the storage key for a model and prompt.
func CacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "planner:gen:" + hex.EncodeToString(sum[:])
}

func (c *CachedGenerator) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	key := CacheKey(c.model, prompt)
	if raw, err := c.store.Get(ctx, key); err == nil {
		var cached ContentResponse
		if jerr := json.Unmarshal(raw, &cached); jerr == nil && cached.Content != "" {
			c.log.Debug("generation cache hit", "key", key)
			return cached, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		c.log.Warn("generation cache read failed", "error", err)
	}

	resp, err := c.next.GenerateContent(ctx, prompt)
	if err != nil {
		return ContentResponse{}, err
	}
	if raw, jerr := json.Marshal(resp); jerr == nil {
		if serr := c.store.Set(ctx, key, raw, c.ttl); serr != nil {
			c.log.Warn("generation cache write failed", "error", serr)
		}
	}
	return resp, nil
}

// Close releases the wrapped generator and store when they hold resources.
func (c *CachedGenerator) Close() error {
	var errs []error
	if cl, ok := c.next.(Closer); ok {
		errs = append(errs, cl.Close())
	}
	if cl, ok := c.store.(Closer); ok {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}
