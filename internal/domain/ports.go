package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Insert сохраняет новый заказ; идентификатор и время создания генерирует хранилище.
	Insert(ctx context.Context, order NewOrder) (Order, error)
	// List возвращает все заказы, новые первыми (по убыванию ID).
	List(ctx context.Context) ([]Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id int64) (Order, error)
}

// ProductCatalog проверяет существование товара во внешнем сервисе.
type ProductCatalog interface {
	// GetProduct возвращает ErrProductNotFound, если товара нет, и ошибку,
	// оборачивающую ErrProductServiceUnavailable, при любой другой проблеме.
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// EventPublisher публикует доменные события во внешний брокер.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}
