package order

import (
	"errors"
	"testing"

	"bocateria/internal/menu"

	"github.com/shopspring/decimal"
)

func TestResolveCustomizationsUsesCatalogPrice(t *testing.T) {
	item := menu.DefaultCatalog().Menu[0]

	got, err := ResolveCustomizations(item, &Customizations{
		Removed: []string{"Mayonesa"},
		Added:   []menu.Extra{{Name: "Queso", Price: decimal.NewFromInt(0)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Added) != 1 || !got.Added[0].Price.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected catalog price 1.00, got %+v", got.Added)
	}
	if len(got.Removed) != 1 {
		t.Fatalf("removed ingredients lost: %+v", got.Removed)
	}

	_, err = ResolveCustomizations(item, &Customizations{Added: []menu.Extra{{Name: "Caviar"}}})
	if !errors.Is(err, ErrUnknownExtra) {
		t.Fatalf("expected ErrUnknownExtra, got %v", err)
	}

	if got, err := ResolveCustomizations(item, nil); got != nil || err != nil {
		t.Fatalf("nil customizations should pass through, got %+v %v", got, err)
	}
}
