package publisher

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

// Message — опубликованное через MockPublisher сообщение.
type Message struct {
	Topic   string
	Key     string
	Payload any
}

// MockPublisher — конфигурируемая заглушка EventPublisher для тестов.
type MockPublisher struct {
	mu       sync.Mutex
	Err      error
	Messages []Message
	Attempts int
}

// NewMockPublisher возвращает mock с успешным сценарием по умолчанию.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish сохраняет сообщение или возвращает заранее настроенную ошибку.
func (m *MockPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Attempts++
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, Message{Topic: topic, Key: key, Payload: payload})
	return nil
}

// Published возвращает копию опубликованных сообщений.
func (m *MockPublisher) Published() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}

var _ domain.EventPublisher = (*MockPublisher)(nil)
