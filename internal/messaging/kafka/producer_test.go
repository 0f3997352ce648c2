package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

func testOrderCreatedEvent() domain.OrderCreatedEvent {
	return domain.NewOrderCreatedEvent(
		domain.Order{
			ID:        12,
			ProductID: "p-1",
			Quantity:  3,
			Status:    domain.OrderStatusPending,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		domain.Product{ID: "p-1", Name: "Widget"},
	)
}

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducerWith(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != domain.TopicOrders {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "12" {
			return fmt.Errorf("unexpected key %q", key)
		}

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[string(h.Key)] = string(h.Value)
		}
		if headers[HeaderEventType] != domain.EventOrderCreated {
			return fmt.Errorf("unexpected event type header %q", headers[HeaderEventType])
		}
		if headers[HeaderEventID] == "" {
			return errors.New("event id header is empty")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var payload map[string]any
		if err := json.Unmarshal(value, &payload); err != nil {
			return err
		}
		if payload["event"] != domain.EventOrderCreated || payload["productName"] != "Widget" {
			return fmt.Errorf("unexpected payload %v", payload)
		}
		if payload["orderId"] != float64(12) || payload["quantity"] != float64(3) {
			return fmt.Errorf("unexpected payload %v", payload)
		}
		return nil
	})

	event := testOrderCreatedEvent()
	if err := producer.PublishEvent(domain.TopicOrders, "12", event.EventName(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducerWith(mockProducer, nil)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(domain.TopicOrders, "1", "", testOrderCreatedEvent())
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected wrapped ErrOutOfBrokers, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducerWith(mockProducer, nil)

	// Канал не сериализуется в JSON, сообщение не должно уйти в Kafka.
	if err := producer.PublishEvent(domain.TopicOrders, "1", "", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewProducerConfig(t *testing.T) {
	cfg := newProducerConfig()

	if cfg.Producer.RequiredAcks != sarama.WaitForAll {
		t.Errorf("unexpected required acks: %v", cfg.Producer.RequiredAcks)
	}
	if cfg.Producer.Retry.Max != 0 {
		t.Errorf("expected no producer retries, got %d", cfg.Producer.Retry.Max)
	}
	if !cfg.Producer.Return.Successes {
		t.Error("sync producer requires Return.Successes")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should be valid: %v", err)
	}
}

func TestEventTypeOf(t *testing.T) {
	if got := eventTypeOf(testOrderCreatedEvent()); got != domain.EventOrderCreated {
		t.Errorf("unexpected event type: %q", got)
	}
	if got := eventTypeOf(map[string]string{"a": "b"}); got != "" {
		t.Errorf("expected empty event type, got %q", got)
	}
}
