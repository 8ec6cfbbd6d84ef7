package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DashboardStats is the staff dashboard aggregate over paid orders.
type DashboardStats struct {
	TotalRevenue          decimal.Decimal                  `json:"totalRevenue"`
	TotalOrders           int                              `json:"totalOrders"`
	MostPopularItem       string                           `json:"mostPopularItem"`
	RevenueByDiningOption map[DiningOption]decimal.Decimal `json:"revenueByDiningOption"`
}

// Stats aggregates revenue and item popularity. Ties on quantity go to the
// item seen first.
func Stats(history []Order) DashboardStats {
	stats := DashboardStats{
		TotalRevenue:    decimal.Zero,
		TotalOrders:     len(history),
		MostPopularItem: "N/A",
		RevenueByDiningOption: map[DiningOption]decimal.Decimal{
			DineIn:  decimal.Zero,
			Takeout: decimal.Zero,
		},
	}

	counts := map[string]int{}
	var seen []string

	for _, o := range history {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		if o.DiningOption != nil {
			stats.RevenueByDiningOption[*o.DiningOption] = stats.RevenueByDiningOption[*o.DiningOption].Add(o.Total)
		}
		for _, it := range o.Items {
			if _, ok := counts[it.Name]; !ok {
				seen = append(seen, it.Name)
			}
			counts[it.Name] += it.Quantity
		}
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})
	if len(seen) > 0 {
		stats.MostPopularItem = fmt.Sprintf("%s (%d)", seen[0], counts[seen[0]])
	}
	return stats
}

// BillSummary renders the bill as the Spanish text read aloud to diners.
func (m *Manager) BillSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return summarize(m.cart)
}

func summarize(items []CartItem) string {
	byCustomer := map[string][]string{}
	for _, it := range items {
		byCustomer[it.CustomerName] = append(byCustomer[it.CustomerName], fmt.Sprintf("%d %s", it.Quantity, it.Name))
	}

	var b strings.Builder
	b.WriteString("Resumen del pedido.")
	for _, name := range customerNames(items) {
		fmt.Fprintf(&b, " Para %s: %s.", name, strings.Join(byCustomer[name], ", "))
	}
	fmt.Fprintf(&b, " El total es %s euros.", billTotal(items).StringFixed(2))
	return b.String()
}
