package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// pushFrame is one websocket message from the server's notification stream.
type pushFrame struct {
	Event string          `json:"event"`
	Data  notificationDTO `json:"data"`
}

// PushListener feeds server-originated notifications into the ledger. It is
// the "external push event" source: everything it receives goes through the
// same Emit path as engine-emitted notifications.
type PushListener struct {
	url     string
	tokenFn func() string
	ledger  domain.NotificationLedger
	dialer  *websocket.Dialer
}

// NewPushListener will create a new push listener object. tokenFn supplies
// the current bearer token at (re)connect time.
func NewPushListener(url string, tokenFn func() string, ledger domain.NotificationLedger) *PushListener {
	return &PushListener{
		url:     url,
		tokenFn: tokenFn,
		ledger:  ledger,
		dialer:  websocket.DefaultDialer,
	}
}

// Start connects and reads until ctx is cancelled, reconnecting with
// exponential backoff on any failure.
func (p *PushListener) Start(ctx context.Context) {
	backoff := reconnectMin
	for {
		if ctx.Err() != nil {
			return
		}
		err := p.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logrus.Warnf("push channel dropped, reconnecting in %s: %v", backoff, err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > reconnectMax {
			backoff = reconnectMax
		}
	}
}

func (p *PushListener) listen(ctx context.Context) error {
	header := http.Header{}
	if token := p.tokenFn(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := p.dialer.DialContext(ctx, p.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock ReadJSON when the context goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	logrus.Info("push channel connected")
	for {
		var frame pushFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return err
		}
		if frame.Event != "notification" {
			continue
		}
		n := frame.Data.toDomain()
		if n.ID == "" {
			logrus.Warn("dropping push notification without id")
			continue
		}
		p.ledger.Emit(n)
	}
}
