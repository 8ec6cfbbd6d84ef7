package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

var allowedImageExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// ValidateImageExtension checks an uploaded dish photo and returns its
// content type.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", errors.New("file extension missing")
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", errors.New("file type not allowed")
	}

	return contentType, nil
}

// ParseItemType accepts the two catalog kinds used in routes.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeMenu, ItemTypeDrink:
		return ItemType(s), nil
	}
	return "", errors.New("item type must be 'menu' or 'drink'")
}

// ParseAllergies drops unknown keys instead of failing the whole filter.
func ParseAllergies(raw []string) []Allergy {
	var out []Allergy
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			a := Allergy(strings.TrimSpace(part))
			if a.Valid() {
				out = append(out, a)
			}
		}
	}
	return out
}
