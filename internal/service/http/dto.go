package httpsvc

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
	"github.com/vladislavdragonenkov/order-service/internal/service/order"
)

type createOrderRequest struct {
	ProductID domain.FlexibleID `json:"productId"`
	Quantity  json.RawMessage   `json:"quantity"`
}

// parseQuantity возвращает целое количество из тела запроса.
// Всё, что не является целым JSON-числом, превращается в 0 и
// отклоняется доменной валидацией.
func parseQuantity(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0
	}
	if v, err := n.Int64(); err == nil {
		return v
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > domain.MaxQuantity || f < math.MinInt32 {
		return 0
	}
	return int64(f)
}

type createOrderResponse struct {
	ID          int64     `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int64     `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newCreateOrderResponse(created order.CreatedOrder) createOrderResponse {
	return createOrderResponse{
		ID:          created.Order.ID,
		ProductID:   created.Order.ProductID,
		ProductName: created.Product.Name,
		Quantity:    created.Order.Quantity,
		Status:      string(created.Order.Status),
		CreatedAt:   created.Order.CreatedAt,
	}
}

type orderView struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func newOrderView(o domain.Order) orderView {
	return orderView{
		ID:        o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
