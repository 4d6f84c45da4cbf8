package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind is the severity of a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

var toastIcons = map[ToastKind]string{
	ToastSuccess: "fas fa-check-circle",
	ToastError:   "fas fa-exclamation-circle",
	ToastWarning: "fas fa-exclamation-triangle",
	ToastInfo:    "fas fa-info-circle",
}

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 4 * time.Second

// Toast is a transient notification.
type Toast struct {
	ID        string
	Kind      ToastKind
	Title     string
	Message   string
	Icon      string
	CreatedAt time.Time
}

// Notifier keeps the visible toasts. Each toast is dismissed by its own timer;
// toasts never block the caller and do not interact with each other.
type Notifier struct {
	mu       sync.Mutex
	duration time.Duration
	toasts   []Toast
	timers   map[string]*time.Timer
}

// NewNotifier creates a notifier whose toasts disappear after duration. A
// non-positive duration keeps toasts until dismissed.
func NewNotifier(duration time.Duration) *Notifier {
	return &Notifier{
		duration: duration,
		timers:   make(map[string]*time.Timer),
	}
}

// Show appends a toast and schedules its removal.
func (n *Notifier) Show(kind ToastKind, message, title string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Icon:      toastIcons[kind],
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast)
	if n.duration > 0 {
		id := toast.ID
		n.timers[id] = time.AfterFunc(n.duration, func() { n.Dismiss(id) })
	}
	return toast
}

// Success shows a success toast.
func (n *Notifier) Success(message string) Toast {
	return n.Show(ToastSuccess, message, "")
}

// Error shows an error toast.
func (n *Notifier) Error(message string) Toast {
	return n.Show(ToastError, message, "")
}

// Dismiss removes a toast. It reports whether the toast was still visible.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i:i], n.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Toast(nil), n.toasts...)
}

// Close stops pending timers and drops every toast.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.toasts = nil
}
