package menu

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "menu.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func TestSQLiteRepository_ImageOverrides(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	dish := ImageKey{Type: ItemTypeMenu, ID: 1}
	drink := ImageKey{Type: ItemTypeDrink, ID: 1}

	if err := repo.SaveImageOverride(ctx, dish, "https://img/a.png"); err != nil {
		t.Fatal(err)
	}
	// second save for the same item replaces the url
	if err := repo.SaveImageOverride(ctx, dish, "https://img/b.png"); err != nil {
		t.Fatal(err)
	}
	// same id in the other catalog is a separate row
	if err := repo.SaveImageOverride(ctx, drink, "https://img/cana.png"); err != nil {
		t.Fatal(err)
	}

	overrides, err := repo.LoadImageOverrides(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(overrides) != 2 || overrides[dish] != "https://img/b.png" || overrides[drink] != "https://img/cana.png" {
		t.Fatalf("unexpected overrides %v", overrides)
	}

	if err := repo.ClearImageOverrides(ctx); err != nil {
		t.Fatal(err)
	}
	overrides, _ = repo.LoadImageOverrides(ctx)
	if len(overrides) != 0 {
		t.Fatalf("expected no overrides after clear, got %v", overrides)
	}
}

func TestSQLiteRepository_CreatedItems(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	older := Item{ID: 1720000000000, Type: ItemTypeMenu, Name: "Viejo", Price: decimal.RequireFromString("4.20"), Category: CategoryGenerated}
	newer := Item{ID: 1720000000500, Type: ItemTypeMenu, Name: "Nuevo", Price: decimal.RequireFromString("6.00"), Category: CategoryGenerated}

	for _, it := range []Item{older, newer} {
		if err := repo.SaveCreatedItem(ctx, it); err != nil {
			t.Fatal(err)
		}
	}

	items, err := repo.LoadCreatedItems(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Name != "Nuevo" {
		t.Fatalf("expected newest first, got %+v", items)
	}
	if !items[1].Price.Equal(decimal.RequireFromString("4.20")) {
		t.Fatalf("price not round-tripped: %s", items[1].Price)
	}

	if err := repo.ClearCreatedItems(ctx); err != nil {
		t.Fatal(err)
	}
	items, _ = repo.LoadCreatedItems(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(items))
	}
}

func TestStoreReload_DrinkImageStaysOnDrink(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	first := NewStore(DefaultCatalog(), repo, nil)
	if err := first.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := first.UpdateItemImage(ctx, 1, "https://img/cana-nueva.jpg", ItemTypeDrink); err != nil {
		t.Fatal(err)
	}

	// a restart builds a new store over the same database
	second := NewStore(DefaultCatalog(), repo, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatal(err)
	}

	drink, err := second.Lookup(ItemTypeDrink, 1)
	if err != nil {
		t.Fatal(err)
	}
	if drink.ImageURL != "https://img/cana-nueva.jpg" {
		t.Fatalf("drink image not restored: %s", drink.ImageURL)
	}

	dish, err := second.Lookup(ItemTypeMenu, 1)
	if err != nil {
		t.Fatal(err)
	}
	if dish.ImageURL != DefaultCatalog().Menu[0].ImageURL {
		t.Fatalf("dish 1 picked up the drink image: %s", dish.ImageURL)
	}
}

func TestStoreReload_CreatedDishKeepsImage(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	first := NewStore(DefaultCatalog(), repo, nil)
	created, err := first.AddGeneratedItem(ctx, "Bocadillo Lunar", "Creación de IA: luna", decimal.RequireFromString("7.00"), "https://img/old.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := first.UpdateItemImage(ctx, created.ID, "https://img/new.png", ItemTypeMenu); err != nil {
		t.Fatal(err)
	}

	second := NewStore(DefaultCatalog(), repo, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := second.Lookup(ItemTypeMenu, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ImageURL != "https://img/new.png" {
		t.Fatalf("expected override on created dish, got %s", got.ImageURL)
	}
}
