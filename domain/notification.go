package domain

import "time"

// NotificationType enumerates the interaction kinds that produce a
// notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// NotificationPayload carries the optional context of a notification.
type NotificationPayload struct {
	ActorID    string     `json:"actor_id,omitempty"`
	ActorName  string     `json:"actor_name,omitempty"`
	TargetID   string     `json:"target_id,omitempty"`
	TargetKind ObjectKind `json:"target_kind,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"` // Comment excerpt, capped
}

// Notification is created as a side effect of an interaction or by the push
// channel, and mutated only by the ledger's read-state transitions. Never
// deleted.
type Notification struct {
	ID        string              `json:"id"`
	Type      NotificationType    `json:"type"`
	Read      bool                `json:"read"`
	CreatedAt time.Time           `json:"created_at"`
	Payload   NotificationPayload `json:"payload"`
}

// NotificationLedger owns the read/unread lifecycle of notifications
// independent of how they were created. Invariant: Unread always equals the
// count of held notifications with Read == false.
type NotificationLedger interface {
	// Emit inserts at the front (most-recent-first) and bumps the unread
	// counter by one.
	Emit(n Notification)

	// MarkRead flips one notification to read. Idempotent: already-read or
	// unknown ids are a no-op.
	MarkRead(id string) bool

	// MarkAllRead flips every unread notification in one pass.
	MarkAllRead()

	// Refresh replaces the sequence wholesale with server truth and
	// recomputes the unread counter. This is the only operation allowed to
	// drop the counter by more than one at a time.
	Refresh(list []Notification)

	// Unread returns the current unread counter.
	Unread() int

	// List returns the notifications, most recent first.
	List() []Notification
}
