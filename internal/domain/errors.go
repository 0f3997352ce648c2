package domain

import "errors"

var (
	// ErrProductIDRequired — в запросе нет идентификатора товара.
	ErrProductIDRequired = errors.New("productId is required")
	// ErrQuantityInvalid — количество отсутствует, нулевое или отрицательное.
	ErrQuantityInvalid = errors.New("quantity must be a positive number")
	// ErrProductNotFound возвращается, если сервис товаров ответил 404.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductServiceUnavailable — таймаут или любая другая ошибка сервиса товаров.
	ErrProductServiceUnavailable = errors.New("product service unavailable")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
)

// IsInvalidRequest сообщает, является ли ошибка ошибкой валидации входных данных.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrProductIDRequired) || errors.Is(err, ErrQuantityInvalid)
}
