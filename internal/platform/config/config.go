package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	SeatCacheTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string
	JWTTTL    time.Duration

	BookingRateLimit  int
	BookingRateWindow time.Duration
	IPRateLimit       float64
	IPRateBurst       int
	TrustedProxies    []string

	NotifyInterval time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	AdminUsername string
	AdminPassword string
}

// Load reads .env when present and then the process environment.
// It returns whether a .env file was loaded so the caller can log it.
func Load(files ...string) (*Config, bool, error) {
	loaded := godotenv.Load(files...) == nil

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second),

		StorageDriver: getEnv("STORAGE_DRIVER", StoragePostgres),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "railway_reservation"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SeatCacheTTL:  getDuration("SEAT_CACHE_TTL", 30*time.Second),

		KafkaBrokers: getList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "booking-events"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		BookingRateLimit:  getInt("BOOKING_RATE_LIMIT", 5),
		BookingRateWindow: getDuration("BOOKING_RATE_WINDOW", time.Minute),
		IPRateLimit:       getFloat("IP_RATE_LIMIT", 10),
		IPRateBurst:       getInt("IP_RATE_BURST", 20),
		TrustedProxies:    getList("TRUSTED_PROXIES"),

		NotifyInterval: getDuration("NOTIFY_INTERVAL", time.Minute),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, loaded, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.BookingRateLimit <= 0 || c.BookingRateWindow < time.Second {
		errs = append(errs, errors.New("booking rate limit needs a positive limit and a window of at least 1s"))
	}
	if c.IPRateLimit <= 0 || c.IPRateBurst <= 0 {
		errs = append(errs, errors.New("IP_RATE_LIMIT and IP_RATE_BURST must be positive"))
	}
	if c.NotifyInterval <= 0 {
		errs = append(errs, errors.New("NOTIFY_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
