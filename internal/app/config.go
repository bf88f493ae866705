package app

import (
	"os"
	"strconv"
	"time"
)

// Config описывает настройки запуска кассы.
type Config struct {
	// HTTPAddr — адрес JSON API для браузерного UI.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, /healthz, /livez, /readyz).
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустой — in-memory.
	PostgresDSN string
	// KafkaBrokers включает публикацию событий заказов; пустой — события копятся в очереди.
	KafkaBrokers string
	// KafkaTopic — topic событий заказов (по умолчанию pos.order.events).
	KafkaTopic string
	// TaxRateBP — ставка налога в базисных пунктах.
	TaxRateBP int64
	// SyncInterval — период опроса очереди синхронизации.
	SyncInterval time.Duration
	// SeedDemoData наполняет пустой каталог демо-данными.
	SeedDemoData bool
}

// DefaultConfig возвращает конфигурацию демо-кассы.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:     ":8080",
		MetricsAddr:  ":9090",
		KafkaTopic:   "pos.order.events",
		TaxRateBP:    800,
		SyncInterval: 2 * time.Second,
		SeedDemoData: true,
	}
}

// ReadConfig строит конфигурацию из окружения поверх значений по умолчанию.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("POS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("POS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("POS_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("POS_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("POS_KAFKA_TOPIC"); v != "" {
		cfg.KafkaTopic = v
	}
	if v := os.Getenv("POS_TAX_RATE_BP"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			cfg.TaxRateBP = parsed
		}
	}
	if v := os.Getenv("POS_SYNC_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.SyncInterval = parsed
		}
	}
	if v := os.Getenv("POS_SEED_DEMO_DATA"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.SeedDemoData = parsed
		}
	}
	return cfg
}
