package session

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"bocateria/internal/order"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidClientID = errors.New("invalid client id")
)

const (
	sweepInterval   = time.Second
	maxClientIDSize = 64
)

// Session is one open bill, typically one browser. A session opened with a
// client id keeps its order history under that id, so the history outlives
// the process.
type Session struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"clientId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Manager   *order.Manager `json:"-"`
	Toasts    *ToastQueue    `json:"-"`
}

// Registry owns every live session and drives the pending-item sweeper.
type Registry struct {
	catalog order.Catalog
	history order.HistoryRepository
	policy  order.AssignmentPolicy
	clock   order.Clock

	mu       sync.RWMutex
	sessions map[string]*Session
	clients  map[string]string // client id -> session id
}

func NewRegistry(
	catalog order.Catalog,
	history order.HistoryRepository,
	policy order.AssignmentPolicy,
) *Registry {
	return &Registry{
		catalog:  catalog,
		history:  history,
		policy:   policy,
		clock:    time.Now,
		sessions: make(map[string]*Session),
		clients:  make(map[string]string),
	}
}

// ValidClientID accepts up to 64 letters, digits, '-' and '_'.
func ValidClientID(id string) bool {
	if id == "" || len(id) > maxClientIDSize {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// Create opens an anonymous session. Its history is keyed by the session id
// and cannot be reclaimed after a restart.
func (r *Registry) Create(ctx context.Context) *Session {
	s, _, _ := r.Open(ctx, "")
	return s
}

// Open returns the live session of clientID, or opens a new one with the
// client's persisted history restored. created reports which happened.
func (r *Registry) Open(ctx context.Context, clientID string) (s *Session, created bool, err error) {
	if clientID != "" {
		if !ValidClientID(clientID) {
			return nil, false, ErrInvalidClientID
		}
		if existing := r.byClient(clientID); existing != nil {
			return existing, false, nil
		}
	}

	s = r.newSession(clientID)
	if err := s.Manager.LoadHistory(ctx); err != nil {
		s.Toasts.Error("No se pudo cargar el historial de pedidos.")
	}

	r.mu.Lock()
	if clientID != "" {
		// lost a race with another open for the same client
		if id, ok := r.clients[clientID]; ok {
			existing := r.sessions[id]
			r.mu.Unlock()
			return existing, false, nil
		}
		r.clients[clientID] = s.ID
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	log.Printf("[SESSION] created id=%s client=%q", s.ID, clientID)
	return s, true, nil
}

func (r *Registry) newSession(clientID string) *Session {
	id := uuid.NewString()
	historyKey := order.HistoryKey(id)
	if clientID != "" {
		historyKey = order.HistoryKey(clientID)
	}

	toasts := NewToastQueue()
	return &Session{
		ID:        id,
		ClientID:  clientID,
		CreatedAt: r.clock(),
		Toasts:    toasts,
		Manager: order.NewManager(r.catalog, order.Options{
			Policy:     r.policy,
			Clock:      r.clock,
			Notifier:   toasts,
			History:    r.history,
			HistoryKey: historyKey,
		}),
	}
}

func (r *Registry) byClient(clientID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[r.clients[clientID]]
}

// Join seats the client's session at the table encoded in code. Every
// diner keeps a separate bill; the code only sets the table number.
func (r *Registry) Join(ctx context.Context, code, clientID string) (*Session, bool, error) {
	if _, err := order.ParseJoinCode(code); err != nil {
		return nil, false, err
	}

	s, created, err := r.Open(ctx, clientID)
	if err != nil {
		return nil, false, err
	}
	if err := s.Manager.JoinTable(code); err != nil {
		return nil, false, err
	}
	return s, created, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SweepAll runs the pending-to-ordered sweep on every session.
func (r *Registry) SweepAll(now time.Time) int {
	total := 0
	for _, s := range r.snapshot() {
		total += s.Manager.Sweep(now)
	}
	return total
}

// Run sweeps once per second until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	log.Println("[SESSION] sweeper started")
	for {
		select {
		case <-ctx.Done():
			log.Println("[SESSION] sweeper stopped")
			return
		case now := <-ticker.C:
			r.SweepAll(now)
		}
	}
}

// AllHistory returns the paid orders of every session. With a repository
// this includes sessions from earlier runs.
func (r *Registry) AllHistory(ctx context.Context) ([]order.Order, error) {
	if r.history != nil {
		return r.history.LoadAll(ctx, order.HistoryKeyPrefix)
	}

	all := []order.Order{}
	for _, s := range r.snapshot() {
		all = append(all, s.Manager.OrderHistory()...)
	}
	return all, nil
}
