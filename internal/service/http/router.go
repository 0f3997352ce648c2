package httpsvc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter монтирует API заказов в корень. observer может быть nil.
func NewRouter(handler *Handler, observer RequestObserver) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if observer != nil {
		r.Use(observeRequests(observer))
	}
	r.Use(requestLogger(handler.logger))
	r.Use(recoverer(handler.logger))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Post("/", handler.CreateOrder)
	r.Get("/", handler.ListOrders)
	r.Get("/{id}", handler.GetOrder)
	return r
}
