package httpadapter

import (
	"net/http"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotReady), domain.IsKind(err, domain.ErrIndexNotFound):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
