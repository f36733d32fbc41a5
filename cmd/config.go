package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort     string
	MaxBodyBytes string

	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	DBIsolation string

	KafkaBrokers []string

	RedisAddr       string
	HistoryCacheTTL time.Duration

	JWTSecret string

	PhotoDir       string
	PhotoURLPrefix string

	BusinessTimezone *time.Location

	ProcessingGrace   time.Duration
	StaleClaimTimeout time.Duration
	StaleClaimCron    string

	OutboxBatch       int
	OutboxMaxAttempts int
	OutboxCron        string

	PriceBaseFee      int64
	PricePerKmFee     int64
	PriceFreeKm       float64
	PriceEmergencyFee int64
	ShopLat           float64
	ShopLng           float64

	LogFormat string
	LogLevel  slog.Level
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads envFile when it exists, then the process environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	loc, err := time.LoadLocation(v.GetString("BUSINESS_TIMEZONE"))
	if err != nil {
		return Config{}, fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
	}

	var level slog.Level
	if err = level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:     v.GetString("HTTP_PORT"),
		MaxBodyBytes: v.GetString("HTTP_MAX_BODY"),

		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBSslMode:   v.GetString("DB_SSLMODE"),
		DBIsolation: strings.ToLower(v.GetString("DB_ISOLATION")),

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),

		RedisAddr:       v.GetString("REDIS_ADDR"),
		HistoryCacheTTL: v.GetDuration("HISTORY_CACHE_TTL"),

		JWTSecret: v.GetString("JWT_SECRET"),

		PhotoDir:       v.GetString("PHOTO_DIR"),
		PhotoURLPrefix: v.GetString("PHOTO_URL_PREFIX"),

		BusinessTimezone: loc,

		ProcessingGrace:   v.GetDuration("PROCESSING_GRACE"),
		StaleClaimTimeout: v.GetDuration("STALE_CLAIM_TIMEOUT"),
		StaleClaimCron:    v.GetString("STALE_CLAIM_SCHEDULE"),

		OutboxBatch:       v.GetInt("OUTBOX_BATCH"),
		OutboxMaxAttempts: v.GetInt("OUTBOX_MAX_ATTEMPTS"),
		OutboxCron:        v.GetString("OUTBOX_SCHEDULE"),

		PriceBaseFee:      v.GetInt64("PRICE_BASE_FEE"),
		PricePerKmFee:     v.GetInt64("PRICE_PER_KM_FEE"),
		PriceFreeKm:       v.GetFloat64("PRICE_FREE_KM"),
		PriceEmergencyFee: v.GetInt64("PRICE_EMERGENCY_FEE"),
		ShopLat:           v.GetFloat64("SHOP_LAT"),
		ShopLng:           v.GetFloat64("SHOP_LNG"),

		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
		LogLevel:  level,
	}
	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_MAX_BODY", "20M")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "laundry")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_ISOLATION", "serializable")
	v.SetDefault("HISTORY_CACHE_TTL", "10m")
	v.SetDefault("PHOTO_DIR", "./photos")
	v.SetDefault("PHOTO_URL_PREFIX", "/photos")
	v.SetDefault("BUSINESS_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("PROCESSING_GRACE", "30m")
	v.SetDefault("STALE_CLAIM_TIMEOUT", "24h")
	v.SetDefault("STALE_CLAIM_SCHEDULE", "0 */5 * * * *")
	v.SetDefault("OUTBOX_BATCH", 100)
	v.SetDefault("OUTBOX_MAX_ATTEMPTS", 10)
	v.SetDefault("OUTBOX_SCHEDULE", "*/2 * * * * *")
	v.SetDefault("PRICE_BASE_FEE", 10000)
	v.SetDefault("PRICE_PER_KM_FEE", 2500)
	v.SetDefault("PRICE_FREE_KM", 3)
	v.SetDefault("PRICE_EMERGENCY_FEE", 20000)
	v.SetDefault("SHOP_LAT", -6.2)
	v.SetDefault("SHOP_LNG", 106.816666)
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c Config) validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.OutboxBatch <= 0 || c.OutboxMaxAttempts <= 0 {
		problems = append(problems, errors.New("OUTBOX_BATCH and OUTBOX_MAX_ATTEMPTS must be positive"))
	}
	if c.ProcessingGrace <= 0 || c.StaleClaimTimeout <= 0 {
		problems = append(problems, errors.New("PROCESSING_GRACE and STALE_CLAIM_TIMEOUT must be positive"))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Errorf("LOG_FORMAT %q is not json or text", c.LogFormat))
	}
	return errors.Join(problems...)
}

// NewLogger builds the process logger from LOG_FORMAT and LOG_LEVEL.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
