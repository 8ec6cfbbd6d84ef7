package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bocateria/internal/menu"
	"bocateria/internal/order"

	"github.com/shopspring/decimal"
)

func newTestRegistry(t *testing.T) (*Registry, *menu.Store, *order.InMemoryHistoryRepository) {
	t.Helper()
	store := menu.NewStore(menu.DefaultCatalog(), menu.NewMemoryRepository(), nil)
	history := order.NewInMemoryHistoryRepository()
	return NewRegistry(store, history, order.PolicyFirstAlphabetical), store, history
}

func TestCreateAndGet(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	s := r.Create(context.Background())
	got, err := r.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("expected to find session %s: %v", s.ID, err)
	}

	if _, err := r.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestJoinSeatsTheSession(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	s, created, err := r.Join(context.Background(), "TABLE-12", "")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !created {
		t.Fatal("expected a new session")
	}
	bill := s.Manager.Snapshot()
	if bill.TableNumber == nil || *bill.TableNumber != "12" || !bill.ReadyToOrder {
		t.Fatalf("session not seated: %+v", bill)
	}

	if _, _, err := r.Join(context.Background(), "bogus", ""); !errors.Is(err, order.ErrInvalidJoinCode) {
		t.Fatalf("expected ErrInvalidJoinCode, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("a failed join must not leave a session behind, have %d", r.Len())
	}
}

func TestJoinKeepsDinersOnSeparateBills(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	ana, _, err := r.Join(ctx, "TABLE-4", "ana-phone")
	if err != nil {
		t.Fatal(err)
	}
	luis, created, err := r.Join(ctx, "TABLE-4", "luis-phone")
	if err != nil {
		t.Fatal(err)
	}
	if !created || luis.ID == ana.ID {
		t.Fatal("a second diner at the table should get a session of their own")
	}

	again, created, err := r.Join(ctx, "TABLE-4", "ana-phone")
	if err != nil {
		t.Fatal(err)
	}
	if created || again.ID != ana.ID {
		t.Fatalf("rejoining should resume the client's session, got %s want %s", again.ID, ana.ID)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, have %d", r.Len())
	}
}

func TestOpenResumesClientSession(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	first, created, err := r.Open(ctx, "device-1")
	if err != nil || !created {
		t.Fatalf("expected a new session, created=%v err=%v", created, err)
	}
	again, created, err := r.Open(ctx, "device-1")
	if err != nil || created || again != first {
		t.Fatalf("expected the live session back, created=%v err=%v", created, err)
	}
	other, created, _ := r.Open(ctx, "device-2")
	if !created || other == first {
		t.Fatal("another client must get its own session")
	}

	// joining from the same device seats the existing bill
	seated, created, err := r.Join(ctx, "TABLE-4", "device-1")
	if err != nil || created || seated != first {
		t.Fatalf("expected join to reuse the client session, created=%v err=%v", created, err)
	}
	if tn := first.Manager.Snapshot().TableNumber; tn == nil || *tn != "4" {
		t.Fatalf("table not set: %v", tn)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, have %d", r.Len())
	}
}

func TestOpenRejectsBadClientID(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	for _, id := range []string{"has space", "../etc", strings.Repeat("a", 65)} {
		if _, _, err := r.Open(context.Background(), id); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("%q: expected ErrInvalidClientID, got %v", id, err)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("no session should be created, have %d", r.Len())
	}
}

func TestHistorySurvivesRestart(t *testing.T) {
	store := menu.NewStore(menu.DefaultCatalog(), menu.NewMemoryRepository(), nil)
	history := order.NewInMemoryHistoryRepository()
	ctx := context.Background()

	before := NewRegistry(store, history, order.PolicyFirstAlphabetical)
	s, _, err := before.Open(ctx, "device-1")
	if err != nil {
		t.Fatal(err)
	}
	item, _ := store.Lookup(menu.ItemTypeMenu, 1)
	s.Manager.AddToCart(item, "Ana", 2, nil)
	paid, err := s.Manager.PaymentSuccess(ctx, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	// a new process only shares the history repository
	after := NewRegistry(store, history, order.PolicyFirstAlphabetical)
	if _, err := after.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("live sessions do not survive a restart, got %v", err)
	}

	resumed, created, err := after.Open(ctx, "device-1")
	if err != nil || !created {
		t.Fatalf("expected a fresh session, created=%v err=%v", created, err)
	}
	got := resumed.Manager.OrderHistory()
	if len(got) != 1 || got[0].ID != paid.ID {
		t.Fatalf("expected the paid order back, got %+v", got)
	}

	past, err := resumed.Manager.FindOrder(paid.ID)
	if err != nil {
		t.Fatal(err)
	}
	res := resumed.Manager.Reorder(past)
	if len(res.Added) != 1 || len(res.Skipped) != 0 {
		t.Fatalf("reorder after restart failed: %+v", res)
	}

	stranger, _, _ := after.Open(ctx, "device-2")
	if len(stranger.Manager.OrderHistory()) != 0 {
		t.Fatal("history must stay with its client")
	}
}

func TestSweepAllAndRun(t *testing.T) {
	r, store, _ := newTestRegistry(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.clock = func() time.Time { return base }

	item, _ := store.Lookup(menu.ItemTypeMenu, 1)
	a := r.Create(context.Background())
	b := r.Create(context.Background())
	a.Manager.AddToCart(item, "Ana", 1, nil)
	b.Manager.AddToCart(item, "Luis", 1, nil)

	if n := r.SweepAll(base.Add(5 * time.Second)); n != 0 {
		t.Fatalf("expected no flips yet, got %d", n)
	}
	if n := r.SweepAll(base.Add(21 * time.Second)); n != 2 {
		t.Fatalf("expected 2 flips, got %d", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestAllHistorySpansSessions(t *testing.T) {
	r, store, _ := newTestRegistry(t)
	item, _ := store.Lookup(menu.ItemTypeDrink, 1)

	for _, name := range []string{"Ana", "Luis"} {
		s := r.Create(context.Background())
		s.Manager.AddToCart(item, name, 1, nil)
		if _, err := s.Manager.PaymentSuccess(context.Background(), decimal.Zero); err != nil {
			t.Fatal(err)
		}
	}

	all, err := r.AllHistory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}

func TestToastQueueBoundedAndDrained(t *testing.T) {
	q := NewToastQueue()
	for i := 0; i < toastQueueSize+3; i++ {
		q.Notify(order.Toast{ID: int64(i)})
	}

	got := q.Drain()
	if len(got) != toastQueueSize {
		t.Fatalf("expected %d toasts, got %d", toastQueueSize, len(got))
	}
	if got[0].ID != 3 {
		t.Fatalf("oldest toasts should be dropped, first id %d", got[0].ID)
	}
	if len(q.Drain()) != 0 {
		t.Fatal("queue should be empty after drain")
	}
}
