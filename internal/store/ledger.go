package store

import (
	"sync"

	"github.com/kampusapp/kampus-sync/domain"
)

// notificationLedger keeps the notification sequence most-recent-first and
// maintains the unread counter. The counter is bookkeeping over the same
// data; Refresh is the one path that recomputes it from scratch.
type notificationLedger struct {
	mu     sync.Mutex
	items  []domain.Notification
	unread int
}

var _ domain.NotificationLedger = (*notificationLedger)(nil)

// NewNotificationLedger creates an empty ledger.
func NewNotificationLedger() *notificationLedger {
	return &notificationLedger{}
}

func (l *notificationLedger) Emit(n domain.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]domain.Notification{n}, l.items...)
	if !n.Read {
		l.unread++
	}
}

func (l *notificationLedger) MarkRead(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		if l.items[i].Read {
			return false
		}
		l.items[i].Read = true
		if l.unread > 0 {
			l.unread--
		}
		return true
	}
	return false
}

func (l *notificationLedger) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		l.items[i].Read = true
	}
	l.unread = 0
}

func (l *notificationLedger) Refresh(list []domain.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]domain.Notification(nil), list...)
	l.unread = 0
	for i := range l.items {
		if !l.items[i].Read {
			l.unread++
		}
	}
}

func (l *notificationLedger) Unread() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unread
}

func (l *notificationLedger) List() []domain.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Notification(nil), l.items...)
}
