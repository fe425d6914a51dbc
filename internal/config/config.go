package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	SummaryTTL time.Duration `mapstructure:"summary_ttl"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		RecommendationEvents string `mapstructure:"recommendation_events"`
	} `mapstructure:"topics"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProvidersConfig holds one endpoint block per intelligence signal plus the
// restaurant search and narrative collaborators.
type ProvidersConfig struct {
	Weather      ProviderConfig `mapstructure:"weather"`
	Events       ProviderConfig `mapstructure:"events"`
	Sentiment    ProviderConfig `mapstructure:"sentiment"`
	Economic     ProviderConfig `mapstructure:"economic"`
	Health       ProviderConfig `mapstructure:"health"`
	Demographics ProviderConfig `mapstructure:"demographics"`
	Temporal     ProviderConfig `mapstructure:"temporal"`
	Media        ProviderConfig `mapstructure:"media"`
	Social       ProviderConfig `mapstructure:"social"`
	Places       ProviderConfig `mapstructure:"places"`
	Narrative    ProviderConfig `mapstructure:"narrative"`
}

type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenFor     time.Duration `mapstructure:"open_for"`
}

// ScoringConfig carries the seed weights and the empirically chosen heuristic
// constants of the factor normalizers. The constants are configuration on
// purpose: they were tuned, not derived.
type ScoringConfig struct {
	Weights    WeightsConfig    `mapstructure:"weights"`
	Heuristics HeuristicsConfig `mapstructure:"heuristics"`
	TopK       int              `mapstructure:"top_k"`
}

type WeightsConfig struct {
	SocialTrends        float64 `mapstructure:"social_trends"`
	PersonalPreferences float64 `mapstructure:"personal_preferences"`
	ContextualFactors   float64 `mapstructure:"contextual_factors"`
	LocationRelevance   float64 `mapstructure:"location_relevance"`
	RatingQuality       float64 `mapstructure:"rating_quality"`
	PriceMatch          float64 `mapstructure:"price_match"`
}

type HeuristicsConfig struct {
	TrendingBonus       float64 `mapstructure:"trending_bonus"`        // socialTrends tag match
	PreferenceBonus     float64 `mapstructure:"preference_bonus"`      // personalPreferences match
	HistoryBonus        float64 `mapstructure:"history_bonus"`         // historical tag overlap
	ComfortTempC        float64 `mapstructure:"comfort_temp_c"`        // weather midpoint
	HighFactorThreshold float64 `mapstructure:"high_factor_threshold"` // confidence bonus trigger
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.connect_timeout", "10s")

	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.summary_ttl", "10m")

	viper.SetDefault("kafka.topics.recommendation_events", "recommendation-events")

	viper.SetDefault("auth.token_ttl", "24h")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	for _, p := range []string{
		"weather", "events", "sentiment", "economic", "health",
		"demographics", "temporal", "media", "social", "places", "narrative",
	} {
		viper.SetDefault("providers."+p+".timeout", "2s")
		viper.SetDefault("providers."+p+".breaker.max_failures", 5)
		viper.SetDefault("providers."+p+".breaker.open_for", "30s")
	}
	// The narrative collaborator is slower than the signal providers.
	viper.SetDefault("providers.narrative.timeout", "8s")

	viper.SetDefault("scoring.top_k", 3)
	viper.SetDefault("scoring.weights.social_trends", 0.25)
	viper.SetDefault("scoring.weights.personal_preferences", 0.20)
	viper.SetDefault("scoring.weights.contextual_factors", 0.15)
	viper.SetDefault("scoring.weights.location_relevance", 0.15)
	viper.SetDefault("scoring.weights.rating_quality", 0.15)
	viper.SetDefault("scoring.weights.price_match", 0.10)
	viper.SetDefault("scoring.heuristics.trending_bonus", 30.0)
	viper.SetDefault("scoring.heuristics.preference_bonus", 25.0)
	viper.SetDefault("scoring.heuristics.history_bonus", 15.0)
	viper.SetDefault("scoring.heuristics.comfort_temp_c", 20.0)
	viper.SetDefault("scoring.heuristics.high_factor_threshold", 0.8)

	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
