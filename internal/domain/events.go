package domain

import "time"

const (
	// EventOrderCreated — тип события об успешном создании заказа.
	EventOrderCreated = "ORDER_CREATED"
	// TopicOrders — топик по умолчанию для событий заказов.
	TopicOrders = "orders"
)

// OrderCreatedEvent — полезная нагрузка события ORDER_CREATED.
type OrderCreatedEvent struct {
	Event       string      `json:"event"`
	OrderID     int64       `json:"orderId"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int64       `json:"quantity"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewOrderCreatedEvent собирает событие из сохранённого заказа и найденного товара.
func NewOrderCreatedEvent(order Order, product Product) OrderCreatedEvent {
	productID := product.ID
	if productID == "" {
		productID = order.ProductID
	}
	return OrderCreatedEvent{
		Event:       EventOrderCreated,
		OrderID:     order.ID,
		ProductID:   productID,
		ProductName: product.Name,
		Quantity:    order.Quantity,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
}

// EventName возвращает тип события для заголовков брокера.
func (e OrderCreatedEvent) EventName() string {
	return e.Event
}
