package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/app"
	"github.com/vladislavdragonenkov/order-service/internal/version"
)

const (
	envHTTPAddr             = "ORDER_HTTP_ADDR"
	envMetricsAddr          = "ORDER_METRICS_ADDR"
	envStorageDriver        = "ORDER_STORAGE_DRIVER"
	envPostgresDSN          = "ORDER_POSTGRES_DSN"
	envDatabaseURL          = "DATABASE_URL"
	envPostgresAutoSchema   = "ORDER_POSTGRES_AUTO_SCHEMA"
	envProductServiceURL    = "PRODUCT_SERVICE_URL"
	envProductLookupTimeout = "PRODUCT_LOOKUP_TIMEOUT"
	envKafkaBrokers         = "KAFKA_BROKERS"
	envEventsTopic          = "ORDER_EVENTS_TOPIC"
	envShutdownTimeout      = "ORDER_SHUTDOWN_TIMEOUT"
	envLogLevel             = "LOG_LEVEL"
)

type envLookup func(string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(lookup envLookup) []string {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	raw, ok := lookup(envLogLevel)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	level, err := log.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return []string{fmt.Sprintf("%s: %v, using info", envLogLevel, err)}
	}
	log.SetLevel(level)
	return nil
}

// readConfigFromEnv собирает конфигурацию поверх app.DefaultConfig.
// Некорректные значения не применяются и возвращаются как предупреждения.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string
	warn := func(key string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v, using default", key, err))
	}

	if v, ok := nonEmpty(lookup, envHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := nonEmpty(lookup, envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}

	if v, ok := nonEmpty(lookup, envStorageDriver); ok {
		driver := strings.ToLower(v)
		switch driver {
		case app.StorageDriverMemory, app.StorageDriverPostgres:
			cfg.StorageDriver = driver
		default:
			warn(envStorageDriver, fmt.Errorf("unsupported driver %q", v))
		}
	}

	if v, ok := nonEmpty(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	} else if v, ok := nonEmpty(lookup, envDatabaseURL); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := nonEmpty(lookup, envPostgresAutoSchema); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warn(envPostgresAutoSchema, err)
		} else {
			cfg.PostgresAutoSchema = parsed
		}
	}

	if v, ok := nonEmpty(lookup, envProductServiceURL); ok {
		cfg.ProductServiceURL = v
	}
	if v, ok := nonEmpty(lookup, envProductLookupTimeout); ok {
		parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warn(envProductLookupTimeout, err)
		} else {
			cfg.ProductLookupTimeout = parsed
		}
	}

	// Явно пустой KAFKA_BROKERS выключает публикацию событий.
	if v, ok := lookup(envKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := nonEmpty(lookup, envEventsTopic); ok {
		cfg.EventsTopic = v
	}

	if v, ok := nonEmpty(lookup, envShutdownTimeout); ok {
		parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warn(envShutdownTimeout, err)
		} else {
			cfg.ShutdownTimeout = parsed
		}
	}

	return cfg, warnings
}

func nonEmpty(lookup envLookup, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if !valid(value) {
		return 0, fmt.Errorf("invalid duration %q: %s", raw, rule)
	}
	return value, nil
}

func main() {
	warnings := setupLogger(os.LookupEnv)
	cfg, configWarnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range append(warnings, configWarnings...) {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"product_url":    cfg.ProductServiceURL,
		"kafka_brokers":  strings.Join(cfg.KafkaBrokers, ","),
		"events_topic":   cfg.EventsTopic,
		"version":        version.String(),
	}).Info("запускаем order-service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("order-service остановлен")
}

