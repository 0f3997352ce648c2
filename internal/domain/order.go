package domain

import (
	"math"
	"strings"
	"time"
)

// OrderStatus описывает статус заказа.
type OrderStatus string

// OrderStatusPending — единственный статус, который сервис присваивает новому заказу.
const OrderStatusPending OrderStatus = "PENDING"

// MaxQuantity — верхняя граница количества, которую вмещает колонка quantity.
const MaxQuantity = math.MaxInt32

// Order — сохранённый заказ.
type Order struct {
	// ID генерирует хранилище при вставке.
	ID int64
	// ProductID — непрозрачный идентификатор товара во внешнем сервисе.
	ProductID string
	Quantity  int64
	Status    OrderStatus
	// CreatedAt выставляет хранилище.
	CreatedAt time.Time
}

// NewOrder содержит поля заказа, которые передаются в хранилище при создании.
type NewOrder struct {
	ProductID string
	Quantity  int64
	Status    OrderStatus
}

// NewPendingOrder собирает заказ для вставки после проверки входных данных.
func NewPendingOrder(productID string, quantity int64) (NewOrder, error) {
	if err := ValidateOrderInput(productID, quantity); err != nil {
		return NewOrder{}, err
	}
	return NewOrder{
		ProductID: strings.TrimSpace(productID),
		Quantity:  quantity,
		Status:    OrderStatusPending,
	}, nil
}

// ValidateOrderInput проверяет обязательные поля запроса на создание заказа.
// productId проверяется первым, как и в HTTP-ответах.
func ValidateOrderInput(productID string, quantity int64) error {
	if strings.TrimSpace(productID) == "" {
		return ErrProductIDRequired
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return ErrQuantityInvalid
	}
	return nil
}
