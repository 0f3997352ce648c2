package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
	"github.com/vladislavdragonenkov/order-service/internal/metrics"
)

// Recorder собирает метрики создания заказов. Реализуется *metrics.OrderMetrics.
type Recorder interface {
	RecordOrderCreated()
	RecordCreateFailure(reason string)
	RecordEventPublish(published bool)
}

// Service реализует сценарии создания и чтения заказов поверх
// хранилища, сервиса товаров и брокера событий.
type Service struct {
	repo      domain.OrderRepository
	products  domain.ProductCatalog
	publisher domain.EventPublisher
	topic     string
	recorder  Recorder
	logger    *log.Entry
}

// Config — необязательные параметры сервиса.
type Config struct {
	// Topic для ORDER_CREATED; пустое значение означает domain.TopicOrders.
	Topic    string
	Recorder Recorder
}

// CreatedOrder — результат успешного создания: заказ и найденный товар.
type CreatedOrder struct {
	Order   domain.Order
	Product domain.Product
}

// NewService конструирует сервис с зависимостями.
func NewService(
	repo domain.OrderRepository,
	products domain.ProductCatalog,
	publisher domain.EventPublisher,
	cfg Config,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	if cfg.Topic == "" {
		cfg.Topic = domain.TopicOrders
	}
	return &Service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		topic:     cfg.Topic,
		recorder:  cfg.Recorder,
		logger:    logger,
	}
}

// CreateOrder проверяет запрос, сверяет товар, сохраняет заказ со статусом
// PENDING и публикует ORDER_CREATED. Ошибка публикации не влияет на результат.
func (s *Service) CreateOrder(ctx context.Context, productID string, quantity int64) (CreatedOrder, error) {
	newOrder, err := domain.NewPendingOrder(productID, quantity)
	if err != nil {
		s.recordFailure(metrics.ReasonInvalidRequest)
		return CreatedOrder{}, err
	}

	product, err := s.products.GetProduct(ctx, newOrder.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.recordFailure(metrics.ReasonProductNotFound)
			return CreatedOrder{}, domain.ErrProductNotFound
		}
		s.logger.WithError(err).WithField("product_id", newOrder.ProductID).Error("error calling product service")
		s.recordFailure(metrics.ReasonUpstreamUnavailable)
		if !errors.Is(err, domain.ErrProductServiceUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrProductServiceUnavailable, err)
		}
		return CreatedOrder{}, err
	}

	order, err := s.repo.Insert(ctx, newOrder)
	if err != nil {
		s.recordFailure(metrics.ReasonInternal)
		return CreatedOrder{}, fmt.Errorf("persist order: %w", err)
	}
	if s.recorder != nil {
		s.recorder.RecordOrderCreated()
	}

	// Заказ уже сохранён: отключаемся от отмены запроса, чтобы событие ушло
	// даже если клиент закрыл соединение.
	s.publishOrderCreated(context.WithoutCancel(ctx), order, product)

	return CreatedOrder{Order: order, Product: product}, nil
}

// publishOrderCreated — best-effort публикация: результат логируется и отбрасывается.
func (s *Service) publishOrderCreated(ctx context.Context, order domain.Order, product domain.Product) {
	logger := s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"topic":    s.topic,
	})

	if s.publisher == nil {
		logger.Warn("event publisher is not configured, ORDER_CREATED skipped")
		s.recordPublish(false)
		return
	}

	event := domain.NewOrderCreatedEvent(order, product)
	if err := s.publisher.Publish(ctx, s.topic, strconv.FormatInt(order.ID, 10), event); err != nil {
		logger.WithError(err).Error("failed to publish message to broker")
		s.recordPublish(false)
		return
	}

	logger.Infof("published %s event for order %d", domain.EventOrderCreated, order.ID)
	s.recordPublish(true)
}

// ListOrders возвращает все заказы, новые первыми.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder возвращает заказ или domain.ErrOrderNotFound.
func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

func (s *Service) recordFailure(reason string) {
	if s.recorder != nil {
		s.recorder.RecordCreateFailure(reason)
	}
}

func (s *Service) recordPublish(published bool) {
	if s.recorder != nil {
		s.recorder.RecordEventPublish(published)
	}
}
