package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/order-service/internal/health"
	"github.com/vladislavdragonenkov/order-service/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/order-service/internal/metrics"
	httpsvc "github.com/vladislavdragonenkov/order-service/internal/service/http"
	"github.com/vladislavdragonenkov/order-service/internal/service/order"
	"github.com/vladislavdragonenkov/order-service/internal/service/product"
	"github.com/vladislavdragonenkov/order-service/internal/version"
)

const defaultShutdownTimeout = 5 * time.Second

// Run поднимает API заказов и служебный HTTP-сервер и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, nil)
}

// run — Run с колбэком, который получает фактический адрес API после Listen.
func run(ctx context.Context, cfg Config, onListen func(apiAddr string)) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	orderMetrics := metrics.NewOrderMetrics()

	broker := initKafkaBroker(ctx, cfg.KafkaBrokers, logger)
	defer closeKafka(broker, logger)

	products := product.NewClient(cfg.ProductServiceURL,
		product.WithTimeout(cfg.ProductLookupTimeout),
		product.WithObserver(orderMetrics),
		product.WithLogger(logger.WithField("layer", "product-client")),
	)
	var publisher domain.EventPublisher
	if broker != nil {
		publisher = broker
	}
	orderService := order.NewService(deps.repo, products, publisher, order.Config{
		Topic:    cfg.EventsTopic,
		Recorder: orderMetrics,
	}, logger.WithField("layer", "service"))
	handler := httpsvc.NewHandler(orderService, logger.WithField("layer", "http"))

	healthHandler := newHealthHandler(deps, broker)
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		shutdownHTTP(metricsSrv, logger)
		return err
	}

	apiSrv := &http.Server{
		Handler:           httpsvc.NewRouter(handler, orderMetrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("order service listening on port %s", lis.Addr().String())
		errCh <- apiSrv.Serve(lis)
	}()
	if onListen != nil {
		onListen(lis.Addr().String())
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTPWithin(apiSrv, shutdownTimeout, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newHealthHandler регистрирует проверки хранилища и брокера.
// Брокер некритичен: без него заказы создаются, события теряются.
func newHealthHandler(deps runtimeDependencies, broker *kafka.Broker) *healthcheck.Handler {
	handler := healthcheck.NewHandler(version.GetVersion())
	if deps.storageChecker != nil {
		handler.RegisterChecker("postgres", deps.storageChecker)
	}
	if broker != nil {
		handler.RegisterChecker("broker", healthcheck.NewOptionalChecker("broker", func(context.Context) error {
			return broker.Err()
		}))
	}
	return handler
}

// startMetricsServer запускает служебный HTTP-сервер с /metrics и health probes.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	shutdownHTTPWithin(srv, defaultShutdownTimeout, logger)
}

func shutdownHTTPWithin(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
