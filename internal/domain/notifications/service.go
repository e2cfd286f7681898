package notifications

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Notification struct {
	ID        int64     `json:"id"`
	Variant   Variant   `json:"variant"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func Success(title, body string) Notification {
	return Notification{Variant: VariantSuccess, Title: title, Body: body}
}

func Error(title, body string) Notification {
	return Notification{Variant: VariantError, Title: title, Body: body}
}

func Info(title, body string) Notification {
	return Notification{Variant: VariantInfo, Title: title, Body: body}
}

// Notifier receives the user-visible confirmations raised by domain
// operations.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type discard struct{}

func (discard) Notify(context.Context, Notification) {}

// Discard drops every notification.
var Discard Notifier = discard{}

// Feed keeps the most recent notifications in memory, newest first.
type Feed struct {
	mu     sync.Mutex
	items  []Notification
	limit  int
	nextID int64
	log    *zap.Logger
	now    func() time.Time
}

func NewFeed(limit int, log *zap.Logger) *Feed {
	if limit <= 0 {
		limit = defaultHistory
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{limit: limit, nextID: 1, log: log, now: time.Now}
}

func (f *Feed) Notify(_ context.Context, n Notification) {
	f.mu.Lock()
	n.ID = f.nextID
	f.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now().UTC()
	}
	next := make([]Notification, 0, min(len(f.items)+1, f.limit))
	next = append(next, n)
	for _, item := range f.items {
		if len(next) == f.limit {
			break
		}
		next = append(next, item)
	}
	f.items = next
	f.mu.Unlock()

	f.log.Info("notification", zap.String("variant", string(n.Variant)), zap.String("title", n.Title))
}

func (f *Feed) List(limit int) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]Notification, limit)
	copy(out, f.items[:limit])
	return out
}

func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, item := range f.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// MarkRead reports whether a notification with the id was still held.
func (f *Feed) MarkRead(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}
