package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest/request"
	"github.com/kampusapp/kampus-sync/internal/rest/response"
)

// ProfileHandler represent the httphandler for the user profile
type ProfileHandler struct {
	Service domain.ProfileUsecase
}

func NewProfileHandler(svc domain.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		Service: svc,
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.Service.Current(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewProfileFromDomain(&profile))
}

// Update saves a draft. A field mismatch is a partial success: 200 with a
// warning, never an error, so the UI can tell the user without dropping the
// server-accepted parts.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.UpdateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	profile, warning, err := h.Service.Save(c.Request.Context(), req.ToDomain())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	body := gin.H{"profile": response.NewProfileFromDomain(&profile)}
	if warning != nil {
		body["warning"] = warning.Error()
		body["mismatched_fields"] = warning.Fields
	}
	c.JSON(http.StatusOK, body)
}
