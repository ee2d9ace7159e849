package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fxsnapshot/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://api.exchangerate-api.com/v4/latest/", cfg.BaseURL)
	require.Equal(t, domain.Currency("USD"), cfg.BaseCurrency)
	require.Equal(t, []domain.Currency{"EUR", "GBP", "JPY", "CAD", "MXN"}, cfg.Targets)
	require.Equal(t, "tipos_cambio", cfg.TableName)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "none", cfg.DedupBackend)
	require.False(t, cfg.StrictPersistence)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "eur")
	t.Setenv("TARGET_CURRENCIES", "usd, gbp ,CHF")
	t.Setenv("REQUEST_TIMEOUT_MS", "0")
	t.Setenv("STRICT_PERSISTENCE", "true")
	t.Setenv("CRON_LOCATION", "UTC")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, domain.Currency("EUR"), cfg.BaseCurrency)
	require.Equal(t, []domain.Currency{"USD", "GBP", "CHF"}, cfg.Targets)
	require.Zero(t, cfg.RequestTimeout)
	require.True(t, cfg.StrictPersistence)
	require.Equal(t, time.UTC, cfg.CronLocation)
}

func TestLoad_RejectsBadCurrencies(t *testing.T) {
	t.Setenv("TARGET_CURRENCIES", "EUR,EURO")
	_, err := Load("")
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestLoad_RejectsEmptyTargets(t *testing.T) {
	t.Setenv("TARGET_CURRENCIES", " , ")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDedupBackend(t *testing.T) {
	t.Setenv("DEDUP_BACKEND", "memcached")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fxsnapshot.yaml")
	body := "base_currency: GBP\ntarget_currencies:\n  - EUR\n  - JPY\ndb_host: warehouse\ndb_port: 5439\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, domain.Currency("GBP"), cfg.BaseCurrency)
	require.Equal(t, []domain.Currency{"EUR", "JPY"}, cfg.Targets)
	require.Equal(t, "warehouse", cfg.DB.Host)
	require.Equal(t, 5439, cfg.DB.Port)
}

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	d := DB{Host: "db", Port: 5439, User: "etl", Password: "p@ss", Name: "dw", SSLMode: "require"}
	require.Equal(t, "postgres://etl:p%40ss@db:5439/dw?sslmode=require", d.DSN())

	d.URL = "postgres://other"
	require.Equal(t, "postgres://other", d.DSN())
}
