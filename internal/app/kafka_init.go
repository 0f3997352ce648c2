package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/messaging/kafka"
)

// initKafkaBroker создаёт broker и запускает фоновое подключение.
// Возвращает nil, если brokers пустой. Недоступная Kafka не мешает старту.
func initKafkaBroker(ctx context.Context, brokers []string, logger *log.Entry) *kafka.Broker {
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, order events will not be published")
		return nil
	}

	broker := kafka.NewBroker(brokers, logger.WithField("layer", "kafka"))
	broker.Connect(ctx)
	return broker
}

// closeKafka закрывает broker если он не nil.
func closeKafka(broker *kafka.Broker, logger *log.Entry) {
	if broker == nil {
		return
	}

	if err := broker.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
