package kafka

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

var (
	// ErrBrokerNotConnected возвращается из Publish, пока подключение не установлено.
	ErrBrokerNotConnected = errors.New("kafka broker is not connected")
	// ErrBrokerDisabled — список брокеров пуст, публикация выключена.
	ErrBrokerDisabled = errors.New("kafka brokers are not configured")
)

// ProducerFactory создаёт producer; подменяется в тестах.
type ProducerFactory func(brokers []string) (*Producer, error)

// Broker — принадлежащий процессу publisher событий. Подключение выполняется
// один раз в фоне; до его завершения Publish возвращает ErrBrokerNotConnected.
type Broker struct {
	brokers []string
	factory ProducerFactory
	logger  *log.Entry

	mu         sync.RWMutex
	producer   *Producer
	connectErr error
	closed     bool

	startOnce sync.Once
	done      chan struct{}
}

// NewBroker создаёт publisher для указанных брокеров без подключения.
func NewBroker(brokers []string, logger *log.Entry) *Broker {
	return NewBrokerWithFactory(brokers, NewProducer, logger)
}

// NewBrokerWithFactory позволяет передать собственную фабрику producer.
func NewBrokerWithFactory(brokers []string, factory ProducerFactory, logger *log.Entry) *Broker {
	if logger == nil {
		logger = log.WithField("component", "kafka-broker")
	}
	if factory == nil {
		factory = NewProducer
	}
	return &Broker{
		brokers: brokers,
		factory: factory,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Connect запускает одну асинхронную попытку подключения. Ошибка только логируется.
func (b *Broker) Connect(ctx context.Context) {
	b.startOnce.Do(func() {
		if len(b.brokers) == 0 {
			b.finishConnect(nil, ErrBrokerDisabled)
			b.logger.Warn("kafka brokers are not configured, order events will not be published")
			return
		}
		go b.connect(ctx)
	})
}

func (b *Broker) connect(ctx context.Context) {
	type result struct {
		producer *Producer
		err      error
	}
	resCh := make(chan result, 1)
	go func() {
		producer, err := b.factory(b.brokers)
		resCh <- result{producer: producer, err: err}
	}()

	select {
	case res := <-resCh:
		b.finishConnect(res.producer, res.err)
	case <-ctx.Done():
		b.finishConnect(nil, ctx.Err())
		// Producer мог всё же создаться после отмены, закрываем его.
		go func() {
			if res := <-resCh; res.producer != nil {
				_ = res.producer.Close()
			}
		}()
	}
}

func (b *Broker) finishConnect(producer *Producer, err error) {
	b.mu.Lock()
	if b.closed && producer != nil {
		_ = producer.Close()
		producer = nil
		if err == nil {
			err = ErrBrokerNotConnected
		}
	}
	b.producer = producer
	b.connectErr = err
	b.mu.Unlock()
	close(b.done)

	if err != nil {
		if !errors.Is(err, ErrBrokerDisabled) {
			b.logger.WithError(err).WithField("brokers", b.brokers).Error("broker init error")
		}
		return
	}
	b.logger.WithField("brokers", b.brokers).Info("kafka producer initialized")
}

// Done закрывается после завершения попытки подключения.
func (b *Broker) Done() <-chan struct{} {
	return b.done
}

// Connected сообщает, готов ли producer к публикации.
func (b *Broker) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.producer != nil && !b.closed
}

// Err возвращает причину, по которой подключение недоступно.
func (b *Broker) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	switch {
	case b.closed:
		return ErrBrokerNotConnected
	case b.producer != nil:
		return nil
	case b.connectErr != nil:
		return b.connectErr
	default:
		return ErrBrokerNotConnected
	}
}

// Publish отправляет событие в topic с ключом key.
func (b *Broker) Publish(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed || b.producer == nil {
		return ErrBrokerNotConnected
	}
	return b.producer.PublishEvent(topic, key, eventTypeOf(payload), payload)
}

// Close закрывает producer, если он был создан.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.producer == nil {
		return nil
	}
	err := b.producer.Close()
	b.producer = nil
	return err
}

var _ domain.EventPublisher = (*Broker)(nil)
