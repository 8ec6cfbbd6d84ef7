package session

import (
	"sync"
	"time"

	"bocateria/internal/order"
)

const toastQueueSize = 50

// ToastQueue buffers toasts until the UI drains them. When full the oldest
// toast is dropped.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []order.Toast
}

func NewToastQueue() *ToastQueue {
	return &ToastQueue{}
}

func (q *ToastQueue) Notify(t order.Toast) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.toasts) == toastQueueSize {
		q.toasts = q.toasts[1:]
	}
	q.toasts = append(q.toasts, t)
}

// Drain returns every queued toast, oldest first, and empties the queue.
func (q *ToastQueue) Drain() []order.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.toasts
	q.toasts = nil
	if out == nil {
		out = []order.Toast{}
	}
	return out
}

func (q *ToastQueue) Error(msg string) {
	q.Notify(order.Toast{ID: time.Now().UnixMilli(), Message: msg, Type: order.ToastError})
}
