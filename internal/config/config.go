package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Generation GenerationConfig `mapstructure:"generation"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Planner    PlannerConfig    `mapstructure:"planner"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// CORSOrigins lists browser origins allowed to call the API; empty disables CORS headers.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	// PresignTTL bounds how long export download links stay valid.
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// JWTConfig defines JWT specific configuration.
// Tokens are issued elsewhere; the server only verifies them.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // "dev" or "prod"
}

// Supported generation providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderNone   = "none"
)

// GenerationConfig selects the text-generation backend. Provider "none" disables it and every plan
// comes from the deterministic generator.
type GenerationConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type PlannerConfig struct {
	RepetitionCap  int     `mapstructure:"repetition_cap"`
	MacroPolicy    string  `mapstructure:"macro_policy"`
	MacroTolerance float64 `mapstructure:"macro_tolerance"`
	KnowledgeFile  string  `mapstructure:"knowledge_file"` // optional YAML overlay
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Nested keys map to env vars, e.g. generation.api_key -> GENERATION_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file; defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_planner")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.presign_ttl", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.mode", "dev")

	v.SetDefault("generation.provider", ProviderNone)
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.timeout", "45s")
	v.SetDefault("generation.temperature", 0.2)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("planner.repetition_cap", 2)
	v.SetDefault("planner.macro_policy", "exact")
	v.SetDefault("planner.macro_tolerance", 0.05)
	v.SetDefault("planner.knowledge_file", "")
}

// Validate rejects values the rest of the application cannot interpret.
func (c Config) Validate() error {
	switch strings.ToLower(c.Generation.Provider) {
	case ProviderGemini, ProviderGroq, ProviderNone, "":
	default:
		return fmt.Errorf("config: unknown generation provider %q", c.Generation.Provider)
	}
	switch strings.ToLower(c.Planner.MacroPolicy) {
	case "exact", "tolerance", "":
	default:
		return fmt.Errorf("config: unknown planner macro policy %q", c.Planner.MacroPolicy)
	}
	if c.Planner.MacroTolerance < 0 || c.Planner.MacroTolerance >= 1 {
		return fmt.Errorf("config: planner macro tolerance must be in [0,1), got %v", c.Planner.MacroTolerance)
	}
	if c.Generation.Timeout < 0 {
		return fmt.Errorf("config: negative generation timeout %s", c.Generation.Timeout)
	}
	return nil
}
