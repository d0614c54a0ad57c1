package llm

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/logger"
)

// New builds the configured generator, wrapped in the redis cache when enabled.
// Provider "none" yields a nil generator and the caller plans offline.
func New(ctx context.Context, gen config.GenerationConfig, cache config.CacheConfig, log *logger.Logger) (TextGenerator, error) {
	var base TextGenerator
	model := gen.Model
	switch strings.ToLower(gen.Provider) {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, gen.APIKey, gen.Model, gen.Temperature)
		if err != nil {
			return nil, err
		}
		base, model = c, c.modelName
	case config.ProviderGroq:
		if strings.TrimSpace(gen.APIKey) == "" {
			return nil, fmt.Errorf("groq: missing api key")
		}
		c := NewGroqClient(gen.APIKey, gen.Model, gen.Temperature)
		base, model = c, c.model
	default:
		return nil, fmt.Errorf("unknown generation provider %q", gen.Provider)
	}

	if !cache.Enabled {
		return base, nil
	}
	store, err := NewRedisStore(ctx, cache.RedisAddr, cache.Password, cache.DB)
	if err != nil {
		// Planning works without the cache.
		log.Warn("generation cache disabled", "error", err, "redis_addr", cache.RedisAddr)
		return base, nil
	}
	return NewCachedGenerator(base, store, model, cache.TTL, log), nil
}
