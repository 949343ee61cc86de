package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Lock modes accepted by TRANSFER_LOCK_MODE.
const (
	LockModeGlobal  = "global"
	LockModeAccount = "account"
)

// Config holds the runtime settings of the payments service.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	LockMode string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	NotifyChannel   string
	NotifyQueueSize int
	NotifyTimeout   time.Duration

	CORSOrigins      string
	RateLimitMax     int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	SeedAccounts map[string]decimal.Decimal
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     GetEnv("PORT", "3000"),
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", ""),

		LockMode: strings.ToLower(GetEnv("TRANSFER_LOCK_MODE", LockModeGlobal)),

		RedisEnabled:  GetBoolEnv("REDIS_ENABLED", false),
		RedisHost:     GetEnv("REDIS_HOST", "localhost"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),

		NotifyChannel:   GetEnv("NOTIFY_CHANNEL", "payments.notifications"),
		NotifyQueueSize: GetIntEnv("NOTIFY_QUEUE_SIZE", 1024),
		NotifyTimeout:   GetDurationEnv("NOTIFY_TIMEOUT", 2*time.Second),

		CORSOrigins:      GetEnv("CORS_ORIGINS", "*"),
		RateLimitMax:     GetIntEnv("RATE_LIMIT_MAX", 0),
		HTTPReadTimeout:  GetDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}

	if cfg.LockMode != LockModeGlobal && cfg.LockMode != LockModeAccount {
		return nil, fmt.Errorf("invalid TRANSFER_LOCK_MODE %q", cfg.LockMode)
	}

	seed, err := ParseSeedAccounts(GetEnv("SEED_ACCOUNTS", ""))
	if err != nil {
		return nil, err
	}
	cfg.SeedAccounts = seed

	return cfg, nil
}

// ParseSeedAccounts parses "id:balance,id:balance" into a map.
func ParseSeedAccounts(raw string) (map[string]decimal.Decimal, error) {
	accounts := make(map[string]decimal.Decimal)
	if strings.TrimSpace(raw) == "" {
		return accounts, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		id, balance, ok := strings.Cut(strings.TrimSpace(entry), ":")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid seed account entry %q", entry)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(balance))
		if err != nil {
			return nil, fmt.Errorf("invalid balance for seed account %q: %w", id, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("seed account %q has negative balance", id)
		}
		accounts[id] = amount
	}

	return accounts, nil
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
