package order

import (
	"errors"
	"fmt"

	"bocateria/internal/menu"
)

var ErrUnknownExtra = errors.New("unknown extra")

// ResolveCustomizations checks a client-supplied customization against the
// item and replaces extra prices with the catalog prices.
func ResolveCustomizations(item menu.Item, c *Customizations) (*Customizations, error) {
	if c == nil {
		return nil, nil
	}

	out := &Customizations{
		Removed: append([]string{}, c.Removed...),
		Added:   make([]menu.Extra, 0, len(c.Added)),
	}

	for _, want := range c.Added {
		found := false
		for _, e := range item.Extras {
			if e.Name == want.Name {
				out.Added = append(out.Added, e)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExtra, want.Name)
		}
	}
	return out, nil
}
