package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

const (
	// DefaultBaseURL — адрес сервиса товаров по умолчанию.
	DefaultBaseURL = "http://product-service:8002"
	// DefaultTimeout ограничивает время одного запроса к сервису товаров.
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Outcome описывает результат обращения к сервису товаров для метрик.
type Outcome string

const (
	OutcomeFound       Outcome = "found"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeUnavailable Outcome = "unavailable"
)

// Observer получает результат каждого запроса.
type Observer interface {
	ObserveProductLookup(outcome Outcome, duration time.Duration)
}

// Client — HTTP-клиент сервиса товаров.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	observer   Observer
	logger     *log.Entry
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithObserver подключает сбор метрик.
func WithObserver(o Observer) Option {
	return func(cl *Client) {
		cl.observer = o
	}
}

// WithLogger задаёт логгер клиента.
func WithLogger(logger *log.Entry) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// NewClient создаёт клиента. Пустой baseURL заменяется на DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     log.WithField("component", "product-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес сервиса товаров.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// productView — ответ сервиса товаров; остальные поля игнорируются.
type productView struct {
	ID   domain.FlexibleID `json:"id"`
	Name string            `json:"name"`
}

// GetProduct запрашивает товар по идентификатору.
func (c *Client) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	start := time.Now()
	product, outcome, err := c.fetch(ctx, productID)
	if c.observer != nil {
		c.observer.ObserveProductLookup(outcome, time.Since(start))
	}
	return product, err
}

func (c *Client) fetch(ctx context.Context, productID string) (domain.Product, Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/" + url.PathEscape(productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Product{}, OutcomeUnavailable, unavailable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Product{}, OutcomeUnavailable, unavailable(fmt.Errorf("timeout after %s: %w", c.timeout, err))
		}
		return domain.Product{}, OutcomeUnavailable, unavailable(fmt.Errorf("get %s: %w", endpoint, err))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Product{}, OutcomeNotFound, domain.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.Product{}, OutcomeUnavailable, unavailable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var view productView
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&view); err != nil {
		return domain.Product{}, OutcomeUnavailable, unavailable(fmt.Errorf("decode product: %w", err))
	}

	return domain.Product{ID: string(view.ID), Name: view.Name}, OutcomeFound, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrProductServiceUnavailable, err)
}

var _ domain.ProductCatalog = (*Client)(nil)
