package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"bocateria/internal/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidJoinCode = errors.New("invalid join code")
	ErrOrderNotFound   = errors.New("order not found")
)

const (
	// PendingWindow is how long a new line stays cancellable before the
	// kitchen considers it ordered.
	PendingWindow = 20 * time.Second
	HistoryLimit  = 20

	DefaultReorderCustomer = "Cliente"
	joinCodePrefix         = "TABLE-"
)

// Catalog is the part of the menu store the manager needs.
type Catalog interface {
	Lookup(itemType menu.ItemType, id int) (menu.Item, error)
	LookupByIDAndName(id int, name string) (menu.Item, error)
}

type Clock func() time.Time

type Options struct {
	Policy     AssignmentPolicy
	Clock      Clock
	Notifier   Notifier
	History    HistoryRepository
	HistoryKey string
}

// Manager owns a single open bill and its paid-order history.
type Manager struct {
	catalog    Catalog
	policy     AssignmentPolicy
	clock      Clock
	notifier   Notifier
	history    HistoryRepository
	historyKey string

	mu            sync.Mutex
	cart          []CartItem
	orders        []Order
	pending       *PendingAdd
	diningOption  *DiningOption
	tableNumber   *string
	updateCounter int
	toastSeq      int64
}

func NewManager(catalog Catalog, opts Options) *Manager {
	if opts.Policy == "" {
		opts.Policy = PolicyFirstAlphabetical
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.HistoryKey == "" {
		opts.HistoryKey = HistoryKeyPrefix
	}

	return &Manager{
		catalog:    catalog,
		policy:     opts.Policy,
		clock:      opts.Clock,
		notifier:   opts.Notifier,
		history:    opts.History,
		historyKey: opts.HistoryKey,
		cart:       []CartItem{},
		orders:     []Order{},
	}
}

// notify must be called with m.mu held; the notifier itself must not call
// back into the manager.
func (m *Manager) notify(msg string, typ ToastType) {
	if m.notifier == nil {
		return
	}
	m.toastSeq++
	m.notifier.Notify(Toast{
		ID:      m.clock().UnixMilli()*1000 + m.toastSeq%1000,
		Message: msg,
		Type:    typ,
	})
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

// AddToCart appends a line for customerName. The unit price is fixed here.
func (m *Manager) AddToCart(item menu.Item, customerName string, quantity int, customizations *Customizations) CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(item, customerName, quantity, customizations)
}

func (m *Manager) addLocked(item menu.Item, customerName string, quantity int, customizations *Customizations) CartItem {
	if quantity < 1 {
		quantity = 1
	}
	now := m.clock()

	line := CartItem{
		CartItemID:     newCartItemID(now, item.ID),
		ID:             item.ID,
		Name:           item.Name,
		BasePrice:      item.Price,
		Price:          item.Price.Add(customizations.extrasTotal()),
		Quantity:       quantity,
		CustomerName:   customerName,
		Status:         StatusPending,
		ItemType:       item.Type,
		AddedAt:        now.UnixMilli(),
		Customizations: customizations.clone(),
	}

	m.cart = append(m.cart, line)
	m.updateCounter++
	m.notify(fmt.Sprintf("%s añadido para %s", item.Name, customerName), ToastSuccess)

	return line.clone()
}

func newCartItemID(now time.Time, itemID int) string {
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), itemID, uuid.NewString()[:8])
}

// InitiateAddToCart adds immediately when the policy can pick a diner.
// Otherwise the request is parked (replacing any earlier one) and
// promptForName is called.
func (m *Manager) InitiateAddToCart(item menu.Item, quantity int, customizations *Customizations, promptForName func()) (*CartItem, bool) {
	m.mu.Lock()

	if name := m.policy.resolve(m.customersLocked(), m.cart); name != "" {
		line := m.addLocked(item, name, quantity, customizations)
		m.mu.Unlock()
		return &line, true
	}

	m.pending = &PendingAdd{
		Item:           item.Clone(),
		Quantity:       quantity,
		Customizations: customizations.clone(),
	}
	m.mu.Unlock()

	if promptForName != nil {
		promptForName()
	}
	return nil, false
}

// FinalizeAddToCart completes the parked request for name.
func (m *Manager) FinalizeAddToCart(name string) (*CartItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return nil, false
	}
	p := m.pending
	m.pending = nil

	line := m.addLocked(p.Item, name, p.Quantity, p.Customizations)
	return &line, true
}

func (m *Manager) PendingRequest() *PendingAdd {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return nil
	}
	p := *m.pending
	p.Item = p.Item.Clone()
	p.Customizations = p.Customizations.clone()
	return &p
}

// CancelOrderItem removes a line whatever its status.
func (m *Manager) CancelOrderItem(cartItemID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.cart {
		if it.CartItemID == cartItemID {
			m.cart = append(m.cart[:i], m.cart[i+1:]...)
			m.updateCounter++
			return true
		}
	}
	return false
}

func (m *Manager) ReassignCartItem(cartItemID, newCustomer string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart {
		if m.cart[i].CartItemID == cartItemID {
			m.cart[i].CustomerName = newCustomer
			m.updateCounter++
			return true
		}
	}
	return false
}

// AddNewItemToCustomer adds one unit of a catalog item with an empty
// customization record. Without a name it behaves like InitiateAddToCart.
func (m *Manager) AddNewItemToCustomer(itemType menu.ItemType, itemID int, customerName *string) (*CartItem, error) {
	item, err := m.catalog.Lookup(itemType, itemID)
	if err != nil {
		log.Printf("[ORDER] item not found type=%s id=%d: %v", itemType, itemID, err)
		return nil, ErrItemNotFound
	}

	empty := &Customizations{Removed: []string{}, Added: []menu.Extra{}}

	if customerName != nil && *customerName != "" {
		line := m.AddToCart(item, *customerName, 1, empty)
		return &line, nil
	}

	line, _ := m.InitiateAddToCart(item, 1, empty, nil)
	return line, nil
}

func (m *Manager) ClearBill() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = []CartItem{}
	m.updateCounter++
}

// Sweep flips pending lines that have been in the cart for at least
// PendingWindow to ordered.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.UnixMilli() - PendingWindow.Milliseconds()
	changed := 0
	for i := range m.cart {
		if m.cart[i].Status == StatusPending && m.cart[i].AddedAt <= cutoff {
			m.cart[i].Status = StatusOrdered
			changed++
		}
	}
	if changed > 0 {
		m.updateCounter++
	}
	return changed
}

// --------------------------------------------------
// Dining context
// --------------------------------------------------

func (m *Manager) SetDiningOption(opt *DiningOption) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opt == nil {
		m.diningOption = nil
		return
	}
	o := *opt
	m.diningOption = &o
}

func (m *Manager) SetTableNumber(table *string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if table == nil {
		m.tableNumber = nil
		return
	}
	t := *table
	m.tableNumber = &t
}

// JoinTable accepts codes of the form TABLE-<n>.
func (m *Manager) JoinTable(code string) error {
	table, err := ParseJoinCode(code)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	opt := DineIn
	m.diningOption = &opt
	m.tableNumber = &table
	return nil
}

// JoinCode returns the code other diners use to sit at this table. Only a
// dine-in bill with a table number has one.
func (m *Manager) JoinCode() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.diningOption == nil || *m.diningOption != DineIn || m.tableNumber == nil || *m.tableNumber == "" {
		return "", false
	}
	return joinCodePrefix + *m.tableNumber, true
}

// ParseJoinCode returns the table number encoded in a join code.
func ParseJoinCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, joinCodePrefix) {
		return "", ErrInvalidJoinCode
	}
	table := strings.TrimPrefix(code, joinCodePrefix)
	if n, err := strconv.Atoi(table); err != nil || n < 1 {
		return "", ErrInvalidJoinCode
	}
	return table, nil
}

func (m *Manager) ReadyToOrder() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readyLocked()
}

func (m *Manager) readyLocked() bool {
	if m.diningOption == nil {
		return false
	}
	if *m.diningOption == Takeout {
		return true
	}
	return m.tableNumber != nil && *m.tableNumber != ""
}

// --------------------------------------------------
// Payment & history
// --------------------------------------------------

// PaymentSuccess closes the bill. The in-memory reset always happens; a
// failed history write is returned alongside the order.
func (m *Manager) PaymentSuccess(ctx context.Context, tip decimal.Decimal) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	order := Order{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		Date:         now.UTC().Format(time.RFC3339),
		TableNumber:  m.tableNumber,
		DiningOption: m.diningOption,
		Items:        cloneCart(m.cart),
		Total:        billTotal(m.cart).Add(tip),
	}

	m.orders = append([]Order{order}, m.orders...)
	if len(m.orders) > HistoryLimit {
		m.orders = m.orders[:HistoryLimit]
	}

	m.cart = []CartItem{}
	m.diningOption = nil
	m.tableNumber = nil
	m.updateCounter++

	log.Printf("[ORDER] payment ok order=%s items=%d total=%s", order.ID, len(order.Items), order.Total.StringFixed(2))

	if m.history != nil {
		// the write stays under the lock so concurrent payments persist in order
		if err := m.history.Save(ctx, m.historyKey, cloneOrders(m.orders)); err != nil {
			log.Printf("[ORDER] failed to save order history key=%s: %v", m.historyKey, err)
			return order.clone(), fmt.Errorf("save order history: %w", err)
		}
	}
	return order.clone(), nil
}

// LoadHistory restores the persisted history. On failure the history stays
// empty.
func (m *Manager) LoadHistory(ctx context.Context) error {
	if m.history == nil {
		return nil
	}

	orders, err := m.history.Load(ctx, m.historyKey)
	if err != nil {
		log.Printf("[ORDER] failed to parse order history key=%s: %v", m.historyKey, err)
		return fmt.Errorf("load order history: %w", err)
	}
	if len(orders) > HistoryLimit {
		orders = orders[:HistoryLimit]
	}

	m.mu.Lock()
	m.orders = cloneOrders(orders)
	m.mu.Unlock()
	return nil
}

// FindOrder looks an order up in the history by id.
func (m *Manager) FindOrder(orderID string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID == orderID {
			return o.clone(), nil
		}
	}
	return Order{}, ErrOrderNotFound
}

// Reorder re-adds every line of a past order under the first current diner.
// Lines whose item is gone from the catalog (matched by id and name) are
// skipped.
func (m *Manager) Reorder(order Order) ReorderResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer := DefaultReorderCustomer
	if customers := m.customersLocked(); len(customers) > 0 {
		customer = customers[0]
	}

	res := ReorderResult{Added: []CartItem{}, Skipped: []CartItem{}}
	for _, it := range order.Items {
		item, err := m.catalog.LookupByIDAndName(it.ID, it.Name)
		if err != nil {
			log.Printf("[ORDER] reorder skipped item id=%d name=%q", it.ID, it.Name)
			res.Skipped = append(res.Skipped, it.clone())
			continue
		}
		res.Added = append(res.Added, m.addLocked(item, customer, it.Quantity, it.Customizations))
	}
	return res
}

// --------------------------------------------------
// Read views
// --------------------------------------------------

func (m *Manager) Snapshot() Bill {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := Bill{
		Items:         cloneCart(m.cart),
		Total:         billTotal(m.cart),
		Customers:     m.customersLocked(),
		UpdateCounter: m.updateCounter,
		ReadyToOrder:  m.readyLocked(),
		AwaitingName:  m.pending != nil,
	}
	if m.diningOption != nil {
		d := *m.diningOption
		b.DiningOption = &d
	}
	if m.tableNumber != nil {
		t := *m.tableNumber
		b.TableNumber = &t
	}
	return b
}

func (m *Manager) CartItems() []CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCart(m.cart)
}

func (m *Manager) BillTotal() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return billTotal(m.cart)
}

func (m *Manager) CustomersOnBill() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.customersLocked()
}

func (m *Manager) OrderHistory() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOrders(m.orders)
}

func (m *Manager) UpdateCounter() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCounter
}

func billTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (m *Manager) customersLocked() []string {
	return customerNames(m.cart)
}

func customerNames(items []CartItem) []string {
	seen := make(map[string]struct{}, len(items))
	names := []string{}
	for _, it := range items {
		if _, ok := seen[it.CustomerName]; ok {
			continue
		}
		seen[it.CustomerName] = struct{}{}
		names = append(names, it.CustomerName)
	}
	sort.Strings(names)
	return names
}
