package rest

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// getStatusCode maps the engine's error taxonomy onto the local facade's
// responses. A server rejection keeps its upstream status so the UI can
// distinguish "post deleted" from "auth expired".
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)

	var te *domain.TransportError
	if errors.As(err, &te) {
		return http.StatusBadGateway
	}
	var se *domain.ServerError
	if errors.As(err, &se) {
		return se.Status
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
