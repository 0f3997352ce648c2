package app

import "time"

// Поддерживаемые драйверы хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес API заказов.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, /healthz, /livez, /readyz).
	MetricsAddr string

	StorageDriver      string
	PostgresDSN        string
	PostgresAutoSchema bool

	ProductServiceURL    string
	ProductLookupTimeout time.Duration

	// KafkaBrokers — пустой список отключает публикацию событий.
	KafkaBrokers []string
	EventsTopic  string

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает значения по умолчанию для локального docker-compose окружения.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:             ":8003",
		MetricsAddr:          ":9090",
		StorageDriver:        StorageDriverPostgres,
		PostgresAutoSchema:   true,
		ProductServiceURL:    "http://product-service:8002",
		ProductLookupTimeout: 5 * time.Second,
		KafkaBrokers:         []string{"kafka:9092"},
		EventsTopic:          "orders",
		ShutdownTimeout:      5 * time.Second,
	}
}
