package menu

import "context"

// ImageKey identifies an item across catalogs. Dish and drink ids overlap,
// so the type is part of the key.
type ImageKey struct {
	Type ItemType
	ID   int
}

// CustomizationRepository persists what users layer on top of the seed
// catalog. Store depends ONLY on this interface.
type CustomizationRepository interface {

	// -------------------------------
	// Image overrides (keyed by item type and id)
	// -------------------------------

	LoadImageOverrides(ctx context.Context) (map[ImageKey]string, error)
	SaveImageOverride(ctx context.Context, key ImageKey, imageURL string) error
	ClearImageOverrides(ctx context.Context) error

	// -------------------------------
	// AI-created dishes
	// -------------------------------

	LoadCreatedItems(ctx context.Context) ([]Item, error)
	SaveCreatedItem(ctx context.Context, item Item) error
	ClearCreatedItems(ctx context.Context) error
}
