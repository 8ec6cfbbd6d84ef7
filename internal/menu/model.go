package menu

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemTypeMenu  ItemType = "menu"
	ItemTypeDrink ItemType = "drink"
)

// Allergy keys match the ones the UI sends in filter requests.
type Allergy string

const (
	AllergyGluten    Allergy = "gluten"
	AllergyDairy     Allergy = "dairy"
	AllergyNuts      Allergy = "nuts"
	AllergyShellfish Allergy = "shellfish"
	AllergySoy       Allergy = "soy"
	AllergyEggs      Allergy = "eggs"
)

// AllergyLabels holds the display names shown in the allergy picker.
var AllergyLabels = map[Allergy]string{
	AllergyGluten:    "Gluten",
	AllergyDairy:     "Lácteos",
	AllergyNuts:      "Frutos Secos",
	AllergyShellfish: "Marisco",
	AllergySoy:       "Soja",
	AllergyEggs:      "Huevos",
}

// Allergies lists every allergy in picker order.
var Allergies = []Allergy{
	AllergyGluten,
	AllergyDairy,
	AllergyNuts,
	AllergyShellfish,
	AllergySoy,
	AllergyEggs,
}

func (a Allergy) Valid() bool {
	_, ok := AllergyLabels[a]
	return ok
}

type Ingredient struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

type Extra struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Item is a catalog entry, either a dish or a drink.
type Item struct {
	ID          int             `json:"id"`
	Type        ItemType        `json:"itemType"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category,omitempty"`
	ModelURL    string          `json:"modelUrl,omitempty"`
	Allergens   []Allergy       `json:"allergens,omitempty"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
	Extras      []Extra         `json:"extras,omitempty"`
}

// IsCustom reports whether the item was created at runtime rather than seeded.
func (i Item) IsCustom() bool {
	return i.ID > customItemIDFloor
}

func (i Item) HasAnyAllergen(selected []Allergy) bool {
	for _, a := range i.Allergens {
		for _, s := range selected {
			if a == s {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy so callers never share slices with the store.
func (i Item) Clone() Item {
	out := i
	if i.Allergens != nil {
		out.Allergens = append([]Allergy(nil), i.Allergens...)
	}
	if i.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), i.Ingredients...)
	}
	if i.Extras != nil {
		out.Extras = append([]Extra(nil), i.Extras...)
	}
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Filter narrows the dish list the way the gallery does.
type Filter struct {
	Category  string    `form:"category"`
	Allergies []Allergy `form:"allergies"`
	Search    string    `form:"search"`
}

const (
	CategoryAll       = "Todos"
	CategoryGenerated = "IA"

	customItemIDFloor = 1000
)
