package localstore

import (
	"context"
	"os"
	"testing"

	"balaji-storefront/internal/migrate"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	if err := migrate.Apply(ctx, dsn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if v, dirty, err := migrate.Version(ctx, dsn); err != nil || v != 1 || dirty {
		t.Fatalf("unexpected schema version %d dirty=%t err=%v", v, dirty, err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	exerciseRepository(t, NewPostgres(pool, nil), uuid.NewString())
}
