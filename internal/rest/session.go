package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest/request"
)

// SessionHandler represent the httphandler for session lifecycle
type SessionHandler struct {
	Service domain.SessionUsecase
}

func NewSessionHandler(svc domain.SessionUsecase) *SessionHandler {
	return &SessionHandler{
		Service: svc,
	}
}

// Start hands a token over from the UI's auth flow and rebuilds local state.
func (h *SessionHandler) Start(c *gin.Context) {
	var req request.Session
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	if err := h.Service.SetToken(c.Request.Context(), req.Token); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh re-fetches posts, projects and notifications.
func (h *SessionHandler) Refresh(c *gin.Context) {
	if err := h.Service.Refresh(c.Request.Context()); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// End drops the persisted session token.
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context()); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
