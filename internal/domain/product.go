package domain

// Product — представление товара из внешнего сервиса. Не кешируется и не сохраняется.
type Product struct {
	ID   string
	Name string
}
