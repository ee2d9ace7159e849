package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"fxsnapshot/internal/domain"
	infraconfig "fxsnapshot/internal/infrastructure/config"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Source
	Provider       string
	BaseURL        string
	BaseCurrency   domain.Currency
	Targets        []domain.Currency
	RequestTimeout time.Duration
	// Destination
	DB                DB
	TableName         string
	DBTimeout         time.Duration
	MigrateOnStart    bool
	StrictPersistence bool
	// Schedule
	CronSpec     string
	CronLocation *time.Location
	RunOnStart   bool
	HTTPAddr     string
	// Dedup
	DedupBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DedupTTL      time.Duration
}

// DB describes the destination store. URL wins over the individual fields.
type DB struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders a postgres connection URL.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, fmt.Sprint(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROVIDER", "http")
	v.SetDefault("BASE_URL", infraconfig.DefaultBaseURL)
	v.SetDefault("BASE_CURRENCY", infraconfig.DefaultBaseCurrency)
	v.SetDefault("TARGET_CURRENCIES", infraconfig.DefaultTargets)
	v.SetDefault("REQUEST_TIMEOUT_MS", infraconfig.DefaultRequestTimeout.Milliseconds())
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "")
	v.SetDefault("TABLE_NAME", infraconfig.DefaultTableName)
	v.SetDefault("DB_TIMEOUT_MS", infraconfig.DefaultDBTimeout.Milliseconds())
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("STRICT_PERSISTENCE", false)
	v.SetDefault("CRON_SPEC", infraconfig.DefaultCronSpec)
	v.SetDefault("CRON_LOCATION", infraconfig.DefaultCronLocation)
	v.SetDefault("RUN_ON_START", false)
	v.SetDefault("HTTP_ADDR", infraconfig.DefaultHTTPAddr)
	v.SetDefault("DEDUP_BACKEND", "none")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DEDUP_TTL_MS", infraconfig.DefaultDedupTTL.Milliseconds())
}

// Load reads .env, an optional config file and the environment, in that
// order of increasing precedence, and validates the result.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		Provider:          strings.ToLower(v.GetString("PROVIDER")),
		BaseURL:           v.GetString("BASE_URL"),
		RequestTimeout:    msDuration(v.GetInt64("REQUEST_TIMEOUT_MS")),
		TableName:         v.GetString("TABLE_NAME"),
		DBTimeout:         msDuration(v.GetInt64("DB_TIMEOUT_MS")),
		MigrateOnStart:    v.GetBool("MIGRATE_ON_START"),
		StrictPersistence: v.GetBool("STRICT_PERSISTENCE"),
		CronSpec:          v.GetString("CRON_SPEC"),
		RunOnStart:        v.GetBool("RUN_ON_START"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		DedupBackend:      strings.ToLower(v.GetString("DEDUP_BACKEND")),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		DedupTTL:          msDuration(v.GetInt64("DEDUP_TTL_MS")),
		DB: DB{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}

	base, err := domain.ParseCurrency(v.GetString("BASE_CURRENCY"))
	if err != nil {
		return Config{}, fmt.Errorf("BASE_CURRENCY: %w", err)
	}
	cfg.BaseCurrency = base

	targets, err := domain.ParseCurrencies(stringList(v.Get("TARGET_CURRENCIES")))
	if err != nil {
		return Config{}, fmt.Errorf("TARGET_CURRENCIES: %w", err)
	}
	if len(targets) == 0 {
		return Config{}, errors.New("TARGET_CURRENCIES is empty")
	}
	cfg.Targets = targets

	loc, err := time.LoadLocation(v.GetString("CRON_LOCATION"))
	if err != nil {
		return Config{}, fmt.Errorf("CRON_LOCATION: %w", err)
	}
	cfg.CronLocation = loc

	if cfg.BaseURL == "" {
		return Config{}, errors.New("BASE_URL is empty")
	}
	switch cfg.DedupBackend {
	case "none", "redis":
	default:
		return Config{}, fmt.Errorf("DEDUP_BACKEND: unsupported %q", cfg.DedupBackend)
	}
	return cfg, nil
}

// stringList accepts a comma separated string (env) or a list (config file).
func stringList(raw any) []string {
	if items, ok := raw.([]any); ok {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, fmt.Sprint(it))
		}
		return out
	}
	var out []string
	for _, part := range strings.Split(fmt.Sprint(raw), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func msDuration(ms int64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
