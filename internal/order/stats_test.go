package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil)
	if s.TotalOrders != 0 || !s.TotalRevenue.IsZero() || s.MostPopularItem != "N/A" {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestStatsAggregates(t *testing.T) {
	dine, take := DineIn, Takeout
	history := []Order{
		{
			Total:        decimal.RequireFromString("15.00"),
			DiningOption: &dine,
			Items: []CartItem{
				{Name: "Caña", Quantity: 2},
				{Name: "Bocadillo de Calamares", Quantity: 2},
			},
		},
		{
			Total:        decimal.RequireFromString("4.50"),
			DiningOption: &take,
			Items:        []CartItem{{Name: "Caña", Quantity: 1}},
		},
		{Total: decimal.RequireFromString("1.00")},
	}

	s := Stats(history)
	if s.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", s.TotalOrders)
	}
	if got := s.TotalRevenue.StringFixed(2); got != "20.50" {
		t.Fatalf("expected 20.50, got %s", got)
	}
	if s.MostPopularItem != "Caña (3)" {
		t.Fatalf("unexpected most popular %q", s.MostPopularItem)
	}
	if got := s.RevenueByDiningOption[DineIn].StringFixed(2); got != "15.00" {
		t.Fatalf("dine-in revenue %s", got)
	}
	if got := s.RevenueByDiningOption[Takeout].StringFixed(2); got != "4.50" {
		t.Fatalf("takeout revenue %s", got)
	}
}

func TestStatsTieKeepsFirstSeen(t *testing.T) {
	s := Stats([]Order{{Items: []CartItem{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 1}}}})
	if s.MostPopularItem != "A (1)" {
		t.Fatalf("expected A (1), got %q", s.MostPopularItem)
	}
}

func TestBillSummaryGroupsByCustomer(t *testing.T) {
	items := []CartItem{
		{Name: "Caña", Quantity: 1, CustomerName: "Luis", Price: decimal.RequireFromString("2.50")},
		{Name: "Tortilla", Quantity: 1, CustomerName: "Ana", Price: decimal.RequireFromString("5.00")},
		{Name: "Caña", Quantity: 2, CustomerName: "Ana", Price: decimal.RequireFromString("2.50")},
	}

	want := "Resumen del pedido. Para Ana: 1 Tortilla, 2 Caña. Para Luis: 1 Caña. El total es 12.50 euros."
	if got := summarize(items); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
