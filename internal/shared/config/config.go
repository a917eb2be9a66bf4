package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultRPCURL          = "https://evm.rpc-testnet-donut-node1.push.org"
	DefaultChainID         = 42101
	DefaultContractAddress = "0x0000000000000000000000000000000000000000"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	PublicOrigin   string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Chain configuration
	Chain ChainConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Kafka messaging
	Kafka KafkaConfig

	// Logging
	LogLevel string
}

// ChainConfig holds RPC, contract and signing configuration
type ChainConfig struct {
	RPCURL          string `validate:"required,url"`
	ChainID         int64  `validate:"gt=0"`
	ContractAddress string `validate:"required,eth_addr"`

	// SettlementKey signs server-side mints. Empty disables settlement.
	SettlementKey string
	// DeployerKey is only used by the deploy command.
	DeployerKey string

	FetchConcurrency  int           `validate:"gte=1,lte=64"`
	MaxEnumeration    int           `validate:"gte=1"`
	ReceiptTimeout    time.Duration `validate:"gt=0"`
	EligibilitySource string        `validate:"oneof=contract local contract_with_fallback"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	NonceTTL      time.Duration
	ImageCacheTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret    string `validate:"required,min=16"`
	ExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled            bool          `json:"enabled"`
	WindowDuration     time.Duration `json:"window_duration"`
	DefaultRequests    int           `json:"default_requests"`
	PublicRequests     int           `json:"public_requests"`
	AuthRequests       int           `json:"auth_requests"`
	SettlementRequests int           `json:"settlement_requests"`
	OrganizerRequests  int           `json:"organizer_requests"`
	HealthRequests     int           `json:"health_requests"`
	WhitelistedIPs     []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds ticket lifecycle messaging configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		PublicOrigin:   strings.TrimRight(getEnv("PUBLIC_APP_ORIGIN", ""), "/"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 2*time.Minute),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Chain: ChainConfig{
			RPCURL:            firstEnv(DefaultRPCURL, "RPC_URL", "NEXT_PUBLIC_RPC_URL", "PUSH_TESTNET_RPC"),
			ChainID:           getInt64Env("CHAIN_ID", getInt64Env("NEXT_PUBLIC_CHAIN_ID", DefaultChainID)),
			ContractAddress:   firstEnv(DefaultContractAddress, "CONTRACT_ADDRESS", "NEXT_PUBLIC_CONTRACT_ADDRESS"),
			SettlementKey:     strings.TrimSpace(os.Getenv("EVM_PRIVATE_KEY")),
			DeployerKey:       strings.TrimSpace(firstEnv("", "PRIVATE_KEY", "DEPLOYER_PRIVATE_KEY")),
			FetchConcurrency:  getIntEnv("CHAIN_FETCH_CONCURRENCY", 8),
			MaxEnumeration:    getIntEnv("CHAIN_MAX_ENUMERATION", 5000),
			ReceiptTimeout:    getDurationEnv("CHAIN_RECEIPT_TIMEOUT", 90*time.Second),
			EligibilitySource: getEnv("REFUND_ELIGIBILITY_SOURCE", "contract_with_fallback"),
		},

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "eventx_db"),
			User:     getEnv("DB_USER", "eventx_user"),
			Password: getEnv("DB_PASSWORD", "eventx_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			NonceTTL:      getDurationEnv("REDIS_NONCE_TTL", 5*time.Minute),
			ImageCacheTTL: getDurationEnv("IMAGE_CACHE_TTL", 1*time.Hour),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "change-me-eventx-session-secret"),
			ExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 12*time.Hour),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:            getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:     getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:    getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:     getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			AuthRequests:       getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			SettlementRequests: getIntEnv("RATE_LIMIT_SETTLEMENT_REQUESTS", 5),
			OrganizerRequests:  getIntEnv("RATE_LIMIT_ORGANIZER_REQUESTS", 30),
			HealthRequests:     getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:     getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TICKET_TOPIC", "ticket-lifecycle"),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// Validate checks the chain and session settings the server cannot start without.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.Chain); err != nil {
		return fmt.Errorf("invalid chain configuration: %w", err)
	}
	if err := v.Struct(c.JWT); err != nil {
		return fmt.Errorf("invalid jwt configuration: %w", err)
	}
	return nil
}

// SettlementEnabled reports whether a server signing credential is configured.
func (c *Config) SettlementEnabled() bool {
	return c.Chain.SettlementKey != ""
}

func buildDatabaseDSN(db DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// firstEnv returns the first non-blank variable among keys
func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return fallback
}

// parsedEnv returns parse(value of key), or fallback when the variable is
// unset or does not parse.
func parsedEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	if v, err := parse(value); err == nil {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	return parsedEnv(key, fallback, strconv.Atoi)
}

func getInt64Env(key string, fallback int64) int64 {
	return parsedEnv(key, fallback, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	return parsedEnv(key, fallback, time.ParseDuration)
}

// getDurationEnvSeconds reads a whole number of seconds
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	return parsedEnv(key, fallback, func(s string) (time.Duration, error) {
		n, err := strconv.Atoi(s)
		return time.Duration(n) * time.Second, err
	})
}

func getBoolEnv(key string, fallback bool) bool {
	return parsedEnv(key, fallback, strconv.ParseBool)
}

// getStringSliceEnv splits a comma-separated variable, dropping blanks
func getStringSliceEnv(key string, fallback []string) []string {
	return parsedEnv(key, fallback, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) == 0 {
			return nil, errors.New("empty list")
		}
		return out, nil
	})
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
