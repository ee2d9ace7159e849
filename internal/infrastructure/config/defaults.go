package config

import "time"

const (
	DefaultBaseURL         = "https://api.exchangerate-api.com/v4/latest/"
	DefaultBaseCurrency    = "USD"
	DefaultTargets         = "EUR,GBP,JPY,CAD,MXN"
	DefaultTableName       = "tipos_cambio"
	DefaultHTTPAddr        = ":8080"
	DefaultCronSpec        = "0 12 * * *"
	DefaultCronLocation    = "Local"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultDBTimeout       = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDedupTTL        = 24 * time.Hour
	DefaultMaxBodyBytes    = 1 << 20
	DefaultPGMaxConns      = 2
	DefaultPGMinConns      = 0
)
