package httpapi

import (
	"context"
	"net/http"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/service"

	"go.uber.org/zap"
)

// Deps services behind the API
type Deps struct {
	Access    *access.Controller
	Catalog   *i18n.Catalog
	Auth      service.AuthService
	Devices   service.DeviceService
	Users     service.UserService
	Dashboard service.DashboardService
	Analytics service.AnalyticsService
	Security  service.SecurityService
	Settings  service.SettingsService
}

// API shared state of every handler
type API struct {
	Deps
	logger *zap.Logger
}

func NewAPI(deps Deps, logger *zap.Logger) *API {
	return &API{Deps: deps, logger: logger}
}

type ctxKey int

const sessionKey ctxKey = iota

func withSession(ctx context.Context, s *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// sessionFrom is only valid behind requireSession
func sessionFrom(r *http.Request) *service.Session {
	s, _ := r.Context().Value(sessionKey).(*service.Session)
	return s
}

// locale session language first, then Accept-Language
func (a *API) locale(r *http.Request) string {
	if s := sessionFrom(r); s != nil {
		return s.Locale()
	}
	return a.Catalog.Negotiate(r.Header.Get("Accept-Language"))
}

// requireSession resolves the bearer token to a live session
func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, Result[any]{
				Code: ResultTokenExpired, Type: "error", Message: err.Error(),
			})
			return
		}
		sess, err := a.Auth.Authenticate(r.Context(), token)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// requireDestination stops the request before next runs when the role may not open dest
func (a *API) requireDestination(dest string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if err := a.Access.Guard(sess.Role(), dest); err != nil {
			a.logger.Info("Access denied",
				zap.String("session_id", sess.ID),
				zap.String("role", sess.Role().String()),
				zap.String("destination", dest),
			)
			a.writeAccessDenied(w, r, dest)
			return
		}
		next(w, r)
	})
}
