package order

import (
	"context"
	"os"
	"testing"

	"bocateria/internal/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestPostgresHistoryRepository needs a real database.
func TestPostgresHistoryRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool := db.ConnectPostgres(dsn)
	defer pool.Close()

	ctx := context.Background()
	repo := NewPostgresHistoryRepository(pool)
	prefix := "test-" + uuid.NewString()

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM kv_store WHERE key LIKE $1 || '%'`, prefix)
	})

	missing, err := repo.Load(ctx, prefix+":none")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected empty history, got %d", len(missing))
	}

	dineIn := DineIn
	first := []Order{{ID: "a", Date: "2026-01-01T12:00:00Z", DiningOption: &dineIn, Total: decimal.RequireFromString("12.50")}}
	second := []Order{{ID: "b", Date: "2026-01-02T12:00:00Z", Total: decimal.RequireFromString("4.00")}}

	if err := repo.Save(ctx, prefix+":1", first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, prefix+":2", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	// upsert replaces the stored document
	first[0].Total = decimal.RequireFromString("13.00")
	if err := repo.Save(ctx, prefix+":1", first); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := repo.Load(ctx, prefix+":1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || !got[0].Total.Equal(decimal.RequireFromString("13.00")) {
		t.Fatalf("unexpected history %+v", got)
	}
	if got[0].DiningOption == nil || *got[0].DiningOption != DineIn {
		t.Fatalf("dining option lost: %+v", got[0])
	}

	all, err := repo.LoadAll(ctx, prefix)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}
