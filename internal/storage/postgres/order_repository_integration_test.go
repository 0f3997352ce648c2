package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/order-service/internal/domain"
)

func TestOrderRepository_PostgresInsertGetList(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var created []domain.Order
	for _, productID := range []string{"p-1", "p-2", "p-3"} {
		order, err := repo.Insert(ctx, domain.NewOrder{
			ProductID: productID,
			Quantity:  2,
			Status:    domain.OrderStatusPending,
		})
		if err != nil {
			t.Fatalf("insert %s: %v", productID, err)
		}
		if order.CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be set for %s", productID)
		}
		created = append(created, order)
	}

	if created[0].ID != 1 || created[2].ID != 3 {
		t.Fatalf("unexpected generated ids: %d..%d", created[0].ID, created[2].ID)
	}

	got, err := repo.Get(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.ProductID != "p-2" || got.Quantity != 2 || got.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order payload: %+v", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	for i, want := range []int64{3, 2, 1} {
		if all[i].ID != want {
			t.Fatalf("all[%d].ID = %d, want %d", i, all[i].ID, want)
		}
	}
}

func TestOrderRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.Get(ctx, 9999); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	_, err := repo.Insert(ctx, domain.NewOrder{ProductID: "p-1", Quantity: 0, Status: domain.OrderStatusPending})
	if !errors.Is(err, domain.ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid from check constraint, got %v", err)
	}
}

func TestIsCheckViolation(t *testing.T) {
	if !isCheckViolation(&pgconn.PgError{Code: "23514"}) {
		t.Fatal("expected check violation for code 23514")
	}
	if isCheckViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unexpected check violation for unique code")
	}
	if isCheckViolation(errors.New("plain error")) {
		t.Fatal("plain error must not be check violation")
	}
}
