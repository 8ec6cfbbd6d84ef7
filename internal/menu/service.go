package menu

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("item not found")

const (
	statusLoadFailed  = "Error al cargar el menú personalizado. Se usará la versión por defecto."
	statusImageFailed = "Error al guardar la imagen."
	statusItemFailed  = "Error al guardar el nuevo plato."
	statusResetOK     = "Menú restaurado a su estado original."
	statusResetFailed = "Error al restaurar el menú."
)

// StatusFunc receives user-facing status messages (the UI status bar).
type StatusFunc func(message string)

// Store merges the immutable seed catalog with persisted customizations
// and serves the filtered views the galleries render.
type Store struct {
	base   Catalog
	repo   CustomizationRepository
	status StatusFunc
	now    func() time.Time

	mu         sync.RWMutex
	menu       []Item
	drinks     []Item
	moreDrinks []Item
	lastStatus string
}

func NewStore(base Catalog, repo CustomizationRepository, status StatusFunc) *Store {
	s := &Store{
		base:   base.clone(),
		repo:   repo,
		status: status,
		now:    time.Now,
	}
	s.restoreBase()
	return s
}

func (s *Store) restoreBase() {
	s.menu = cloneItems(s.base.Menu)
	s.drinks = cloneItems(s.base.Drinks)
	s.moreDrinks = cloneItems(s.base.MoreDrinks)
}

// report records msg and forwards it to the status callback outside the lock.
func (s *Store) report(msg string) {
	s.mu.Lock()
	s.lastStatus = msg
	s.mu.Unlock()

	if s.status != nil {
		s.status(msg)
	}
}

// LastStatus returns the most recent status message, if any.
func (s *Store) LastStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus
}

// --------------------------------------------------
// Load (startup)
// --------------------------------------------------

// Load applies persisted image overrides and created items on top of the
// seed. Any persistence failure falls back to the untouched seed.
func (s *Store) Load(ctx context.Context) error {
	overrides, err := s.repo.LoadImageOverrides(ctx)
	if err == nil {
		var created []Item
		created, err = s.repo.LoadCreatedItems(ctx)
		if err == nil {
			s.mu.Lock()
			s.restoreBase()
			s.menu = append(cloneItems(created), s.menu...)
			applyOverrides(s.menu, ItemTypeMenu, overrides)
			applyOverrides(s.drinks, ItemTypeDrink, overrides)
			applyOverrides(s.moreDrinks, ItemTypeDrink, overrides)
			s.mu.Unlock()

			log.Printf("[MENU] loaded overrides=%d created=%d", len(overrides), len(created))
			return nil
		}
	}

	log.Printf("[MENU] error initializing menu: %v", err)

	s.mu.Lock()
	s.restoreBase()
	s.mu.Unlock()
	s.report(statusLoadFailed)

	return fmt.Errorf("load menu customizations: %w", err)
}

func applyOverrides(items []Item, itemType ItemType, overrides map[ImageKey]string) {
	for i := range items {
		if url, ok := overrides[ImageKey{Type: itemType, ID: items[i].ID}]; ok {
			items[i].ImageURL = url
		}
	}
}

// --------------------------------------------------
// Views
// --------------------------------------------------

func (s *Store) Categories() []string {
	return append([]string(nil), s.base.Categories...)
}

func (s *Store) Menu() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.menu)
}

func (s *Store) Drinks() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.drinks)
}

func (s *Store) MoreDrinks() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.moreDrinks)
}

// AllItems returns dishes, drinks and the extended drinks list in that order.
func (s *Store) AllItems() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Item, 0, len(s.menu)+len(s.drinks)+len(s.moreDrinks))
	all = append(all, cloneItems(s.menu)...)
	all = append(all, cloneItems(s.drinks)...)
	all = append(all, cloneItems(s.moreDrinks)...)
	return all
}

// FilteredMenu applies category, allergy and search filters. Runtime-created
// dishes come first, then everything by id.
func (s *Store) FilteredMenu(f Filter) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	items := make([]Item, 0, len(s.menu))

	for _, it := range s.menu {
		if f.Category != "" && f.Category != CategoryAll && it.Category != f.Category {
			continue
		}
		if len(f.Allergies) > 0 && it.HasAnyAllergen(f.Allergies) {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		items = append(items, it.Clone())
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := items[i].IsCustom(), items[j].IsCustom()
		if ci != cj {
			return ci
		}
		return items[i].ID < items[j].ID
	})

	return items
}

func (s *Store) FilteredDrinks(allergies []Allergy) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByAllergy(s.drinks, allergies)
}

func (s *Store) FilteredMoreDrinks(allergies []Allergy) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByAllergy(s.moreDrinks, allergies)
}

func filterByAllergy(items []Item, allergies []Allergy) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if len(allergies) > 0 && it.HasAnyAllergen(allergies) {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

// Lookup finds an item by type and id. Drinks are searched in both drink
// lists.
func (s *Store) Lookup(itemType ItemType, id int) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lists [][]Item
	switch itemType {
	case ItemTypeMenu:
		lists = [][]Item{s.menu}
	case ItemTypeDrink:
		lists = [][]Item{s.drinks, s.moreDrinks}
	default:
		return Item{}, fmt.Errorf("unknown item type %q", itemType)
	}

	for _, list := range lists {
		for _, it := range list {
			if it.ID == id {
				return it.Clone(), nil
			}
		}
	}
	return Item{}, ErrItemNotFound
}

// LookupByID searches every list, dishes first. Used where the caller only
// has an id (voice tool calls).
func (s *Store) LookupByID(id int) (Item, error) {
	if it, err := s.Lookup(ItemTypeMenu, id); err == nil {
		return it, nil
	}
	return s.Lookup(ItemTypeDrink, id)
}

// LookupByIDAndName matches on both fields, so items renamed or removed
// since an order was placed are not found.
func (s *Store) LookupByIDAndName(id int, name string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range [][]Item{s.menu, s.drinks, s.moreDrinks} {
		for _, it := range list {
			if it.ID == id && it.Name == name {
				return it.Clone(), nil
			}
		}
	}
	return Item{}, ErrItemNotFound
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

// UpdateItemImage changes the image in memory first and then persists the
// single override.
func (s *Store) UpdateItemImage(ctx context.Context, itemID int, imageURL string, itemType ItemType) error {
	if itemType != ItemTypeMenu {
		itemType = ItemTypeDrink
	}

	s.mu.Lock()
	found := false
	if itemType == ItemTypeMenu {
		found = setImage(s.menu, itemID, imageURL)
	} else {
		found = setImage(s.drinks, itemID, imageURL)
		found = setImage(s.moreDrinks, itemID, imageURL) || found
	}
	s.mu.Unlock()

	if !found {
		return ErrItemNotFound
	}

	if err := s.repo.SaveImageOverride(ctx, ImageKey{Type: itemType, ID: itemID}, imageURL); err != nil {
		log.Printf("[MENU] failed to save image customization item=%d: %v", itemID, err)
		s.report(statusImageFailed)
		return fmt.Errorf("save image override: %w", err)
	}
	return nil
}

func setImage(items []Item, id int, url string) bool {
	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].ImageURL = url
			found = true
		}
	}
	return found
}

// UpdateItemModel sets the 3D model url of a dish. Not persisted.
func (s *Store) UpdateItemModel(itemID int, modelURL string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.menu {
		if s.menu[i].ID == itemID {
			s.menu[i].ModelURL = modelURL
			return s.menu[i].Clone(), nil
		}
	}
	return Item{}, ErrItemNotFound
}

// AddGeneratedItem registers an AI-created dish under the "IA" category.
func (s *Store) AddGeneratedItem(
	ctx context.Context,
	name string,
	description string,
	price decimal.Decimal,
	imageURL string,
) (Item, error) {

	s.mu.Lock()
	id := int(s.now().UnixMilli())
	// two creations in the same millisecond must not collide
	for s.hasMenuID(id) {
		id++
	}
	item := Item{
		ID:          id,
		Type:        ItemTypeMenu,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Category:    CategoryGenerated,
	}
	s.menu = append([]Item{item.Clone()}, s.menu...)
	s.mu.Unlock()

	if err := s.repo.SaveCreatedItem(ctx, item); err != nil {
		log.Printf("[MENU] failed to save new menu item id=%d: %v", item.ID, err)
		s.report(statusItemFailed)
		return item, fmt.Errorf("save created item: %w", err)
	}
	return item, nil
}

func (s *Store) hasMenuID(id int) bool {
	for _, it := range s.menu {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Reset wipes every persisted customization and goes back to the seed.
// Confirmation belongs to the caller.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.repo.ClearImageOverrides(ctx); err != nil {
		return s.resetFailed(err)
	}
	if err := s.repo.ClearCreatedItems(ctx); err != nil {
		return s.resetFailed(err)
	}

	s.mu.Lock()
	s.restoreBase()
	s.mu.Unlock()
	s.report(statusResetOK)

	log.Println("[MENU] menu reset to base catalog")
	return nil
}

func (s *Store) resetFailed(err error) error {
	log.Printf("[MENU] failed to reset menu: %v", err)
	s.report(statusResetFailed)
	return fmt.Errorf("reset menu: %w", err)
}
