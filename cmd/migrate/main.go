package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/order-service/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
)

type schemaStore interface {
	EnsureSchema(ctx context.Context) error
	SchemaExists(ctx context.Context) (bool, error)
}

var errSchemaMissing = errors.New("orders table is missing")

func main() {
	var (
		action string
		dsn    string
	)

	flag.StringVar(&action, "action", "apply", "schema action: apply|status")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: ORDER_POSTGRES_DSN, DATABASE_URL)")
	flag.Parse()

	dsn = resolveDSN(dsn, os.LookupEnv)
	if dsn == "" {
		fail("ORDER_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := runAction(ctx, store, action, os.Stdout); err != nil {
		fail("%v", err)
	}
}

// resolveDSN выбирает DSN: флаг, затем ORDER_POSTGRES_DSN, затем DATABASE_URL.
func resolveDSN(flagValue string, lookup func(string) (string, bool)) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	for _, key := range []string{"ORDER_POSTGRES_DSN", "DATABASE_URL"} {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func runAction(ctx context.Context, store schemaStore, action string, out io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "apply":
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("apply schema failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, "schema apply ok: orders table is ready")
		return nil
	case "status":
		exists, err := store.SchemaExists(ctx)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		if !exists {
			return errSchemaMissing
		}
		_, _ = fmt.Fprintln(out, "schema status: orders table exists")
		return nil
	default:
		return fmt.Errorf("unsupported action: %s (use apply|status)", action)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
