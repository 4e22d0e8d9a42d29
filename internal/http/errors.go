package httpapi

import (
	"errors"
	"net/http"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/chat"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/service"

	"go.uber.org/zap"
)

// writeError maps service errors to status and envelope
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Result[any]{
			Code: ResultError, Type: "error", Message: "validation failed", Result: verr,
		})
	case errors.Is(err, access.ErrPermissionDenied):
		a.writeAccessDenied(w, r, "")
	case errors.Is(err, access.ErrUnknownDestination),
		errors.Is(err, repository.ErrDeviceNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, chat.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, chat.ErrPanelClosed),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrDemoAccount):
		writeJSON(w, http.StatusConflict, Fail(err.Error()))
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenInvalid):
		writeJSON(w, http.StatusUnauthorized, Result[any]{
			Code: ResultTokenExpired, Type: "error", Message: "session expired, please log in again",
		})
	default:
		a.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
	}
}

func (a *API) writeAccessDenied(w http.ResponseWriter, r *http.Request, destination string) {
	writeJSON(w, http.StatusForbidden, Result[AccessDenied]{
		Code:    ResultAccessDenied,
		Type:    "error",
		Message: a.Catalog.Text(a.locale(r), "access.denied"),
		Result:  AccessDenied{AccessDenied: true, Destination: destination},
	})
}
