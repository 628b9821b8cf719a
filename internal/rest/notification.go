package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest/response"
)

// NotificationHandler represent the httphandler for notifications. Read
// transitions apply locally first; the remote read-state call is best
// effort since the next refresh re-aligns with server truth anyway.
type NotificationHandler struct {
	Ledger  domain.NotificationLedger
	Gateway domain.RemoteGateway
	Worker  domain.NotificationRefreshWorker
}

func NewNotificationHandler(ledger domain.NotificationLedger, gw domain.RemoteGateway, worker domain.NotificationRefreshWorker) *NotificationHandler {
	return &NotificationHandler{
		Ledger:  ledger,
		Gateway: gw,
		Worker:  worker,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	items := h.Ledger.List()
	res := make([]response.Notification, len(items))
	for i := range items {
		res[i] = response.NewNotificationFromDomain(&items[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"unread":        h.Ledger.Unread(),
		"notifications": res,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	changed := h.Ledger.MarkRead(id)
	if changed {
		if err := h.Gateway.MarkNotificationRead(c.Request.Context(), id); err != nil {
			logrus.Warnf("failed to mark notification %s read upstream: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"is_changed": changed, "unread": h.Ledger.Unread()})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.Ledger.MarkAllRead()
	if err := h.Gateway.MarkAllNotificationsRead(c.Request.Context()); err != nil {
		logrus.Warnf("failed to mark all notifications read upstream: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"unread": h.Ledger.Unread()})
}

// Refresh kicks the background worker for an out-of-band server fetch.
func (h *NotificationHandler) Refresh(c *gin.Context) {
	h.Worker.Kick()
	c.Status(http.StatusAccepted)
}
