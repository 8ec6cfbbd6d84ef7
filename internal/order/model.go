package order

import (
	"bocateria/internal/menu"

	"github.com/shopspring/decimal"
)

// Status is the cosmetic lifecycle of a cart line. It only moves forward.
type Status string

const (
	StatusPending Status = "pending"
	StatusOrdered Status = "ordered"
)

type DiningOption string

const (
	DineIn  DiningOption = "dine-in"
	Takeout DiningOption = "takeout"
)

func (d DiningOption) Valid() bool {
	return d == DineIn || d == Takeout
}

// Customizations records which default ingredients were removed and which
// paid extras were added to a single cart line.
type Customizations struct {
	Removed []string     `json:"removed"`
	Added   []menu.Extra `json:"added"`
}

func (c *Customizations) clone() *Customizations {
	if c == nil {
		return nil
	}
	return &Customizations{
		Removed: append([]string{}, c.Removed...),
		Added:   append([]menu.Extra{}, c.Added...),
	}
}

func (c *Customizations) extrasTotal() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, e := range c.Added {
		total = total.Add(e.Price)
	}
	return total
}

// CartItem is one line on the open bill. Price is the unit price fixed at
// creation (base + added extras); it is never recomputed.
type CartItem struct {
	CartItemID     string          `json:"cartItemId"`
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	CustomerName   string          `json:"customerName"`
	Status         Status          `json:"status"`
	ItemType       menu.ItemType   `json:"itemType"`
	AddedAt        int64           `json:"addedAt"`
	Customizations *Customizations `json:"customizations,omitempty"`
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) clone() CartItem {
	out := c
	out.Customizations = c.Customizations.clone()
	return out
}

func cloneCart(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

// Order is a paid bill as kept in the history.
type Order struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	TableNumber  *string         `json:"tableNumber"`
	DiningOption *DiningOption   `json:"diningOption"`
	Items        []CartItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

func (o Order) clone() Order {
	out := o
	out.Items = cloneCart(o.Items)
	if o.TableNumber != nil {
		t := *o.TableNumber
		out.TableNumber = &t
	}
	if o.DiningOption != nil {
		d := *o.DiningOption
		out.DiningOption = &d
	}
	return out
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.clone()
	}
	return out
}

// PendingAdd is an add-to-cart request parked until a customer name is known.
type PendingAdd struct {
	Item           menu.Item       `json:"item"`
	Quantity       int             `json:"quantity"`
	Customizations *Customizations `json:"customizations,omitempty"`
}

// Bill is the read-only view of the open bill returned to the UI.
type Bill struct {
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Customers     []string        `json:"customers"`
	UpdateCounter int             `json:"updateCounter"`
	DiningOption  *DiningOption   `json:"diningOption"`
	TableNumber   *string         `json:"tableNumber"`
	ReadyToOrder  bool            `json:"readyToOrder"`
	AwaitingName  bool            `json:"awaitingName"`
}

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}

// Notifier receives the transient success/error messages the UI shows.
type Notifier interface {
	Notify(t Toast)
}

type NotifierFunc func(t Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// ReorderResult separates lines that were re-added from lines whose catalog
// entry no longer exists.
type ReorderResult struct {
	Added   []CartItem `json:"added"`
	Skipped []CartItem `json:"skipped"`
}
