package httpsvc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
	"github.com/vladislavdragonenkov/order-service/internal/service/order"
)

// Тексты ошибок, которые видит клиент.
const (
	msgInvalidBody         = "invalid request body"
	msgProductNotFound     = "Product not found"
	msgProductUnavailable  = "Unable to verify product. Service unavailable."
	msgOrderNotFound       = "Order not found"
	msgInternalServerError = "Internal server error"
	msgRouteNotFound       = "Not found"
)

const maxBodyBytes = 1 << 20

// OrderService — сценарии, которые обслуживает HTTP API.
type OrderService interface {
	CreateOrder(ctx context.Context, productID string, quantity int64) (order.CreatedOrder, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
}

// Handler реализует HTTP API заказов.
type Handler struct {
	orders OrderService
	logger *log.Entry
}

// NewHandler создаёт обработчик поверх сервиса заказов.
func NewHandler(orders OrderService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{orders: orders, logger: logger}
}

// CreateOrder обрабатывает POST /.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := h.orders.CreateOrder(r.Context(), string(req.ProductID), parseQuantity(req.Quantity))
	if err != nil {
		h.writeServiceError(w, r, err, "create order")
		return
	}

	writeJSON(w, http.StatusCreated, newCreateOrderResponse(created))
}

// ListOrders обрабатывает GET /.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "list orders")
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetOrder обрабатывает GET /{id}. Нечисловой id трактуется как отсутствующий заказ.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, msgOrderNotFound)
		return
	}

	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "get order")
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}

// NotFound отвечает на неизвестные маршруты.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

// MethodNotAllowed отвечает на известный путь с неподдерживаемым методом.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case domain.IsInvalidRequest(err):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, domain.ErrProductServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, msgProductUnavailable)
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, msgOrderNotFound)
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"operation":  operation,
			"request_id": middleware.GetReqID(r.Context()),
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, msgInternalServerError)
	}
}

// validationMessage отдаёт текст доменной ошибки без обёрток.
func validationMessage(err error) string {
	if errors.Is(err, domain.ErrProductIDRequired) {
		return domain.ErrProductIDRequired.Error()
	}
	return domain.ErrQuantityInvalid.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
