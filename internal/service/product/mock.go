package product

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

// MockCatalog — конфигурируемая заглушка ProductCatalog для тестов.
type MockCatalog struct {
	mu       sync.Mutex
	Products map[string]domain.Product
	// Err, если задан, возвращается из каждого вызова.
	Err   error
	Calls []string
}

// NewMockCatalog возвращает mock с переданными товарами.
func NewMockCatalog(products ...domain.Product) *MockCatalog {
	m := &MockCatalog{Products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

// GetProduct возвращает товар, ErrProductNotFound или настроенную ошибку.
func (m *MockCatalog) GetProduct(_ context.Context, productID string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, productID)
	if m.Err != nil {
		return domain.Product{}, m.Err
	}
	p, ok := m.Products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// CallCount возвращает количество вызовов GetProduct.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ domain.ProductCatalog = (*MockCatalog)(nil)
