package domain

import "context"

// NotificationRefreshWorker keeps the ledger aligned with server truth in
// the background.
type NotificationRefreshWorker interface {
	Start(ctx context.Context)

	// Kick requests an out-of-band refresh ahead of the next tick.
	Kick()
}
