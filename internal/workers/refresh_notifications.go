package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
)

// notificationRefreshWorker periodically replaces the ledger contents with
// server truth, which is the one operation allowed to shrink the unread
// counter by more than one.
type notificationRefreshWorker struct {
	gateway  domain.RemoteGateway
	ledger   domain.NotificationLedger
	interval time.Duration
	kick     chan struct{}
}

var _ domain.NotificationRefreshWorker = (*notificationRefreshWorker)(nil)

func NewNotificationRefreshWorker(gw domain.RemoteGateway, ledger domain.NotificationLedger, interval time.Duration) *notificationRefreshWorker {
	return &notificationRefreshWorker{
		gateway:  gw,
		ledger:   ledger,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

// Kick requests a refresh ahead of the next tick.
func (w *notificationRefreshWorker) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
		logrus.Info("notification refresh already requested, kick dropped")
	}
}

func (w *notificationRefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-w.kick:
			w.refresh(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down notification refresh worker")
			return
		}
	}
}

func (w *notificationRefreshWorker) refresh(ctx context.Context) {
	list, err := w.gateway.FetchNotifications(ctx)
	if err != nil {
		// Keep local bookkeeping; the next tick retries.
		logrus.Warnf("notification refresh failed: %v", err)
		return
	}
	w.ledger.Refresh(list)
}
