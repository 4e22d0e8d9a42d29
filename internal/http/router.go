package httpapi

import (
	"net/http"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// Router gorilla/mux with the API's public and session-protected subrouters
type Router struct {
	mux    *mux.Router
	api    *mux.Router
	authed *mux.Router
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	m := mux.NewRouter()
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	})
	m.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Fail("method not allowed"))
	})
	api := m.PathPrefix(apiPrefix).Subrouter()
	return &Router{
		mux:    m,
		api:    api,
		authed: api.NewRoute().Subrouter(),
		logger: logger,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler wraps the router with CORS and request logging
func (r *Router) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	return c.Handler(r.logRequests(r.mux))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.logger.Debug("HTTP request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// RegisterHealthRoutes liveness
func (r *Router) RegisterHealthRoutes() {
	r.api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	}).Methods(http.MethodGet)
}

// RegisterAuthRoutes login is public; logout and me need a session
func (r *Router) RegisterAuthRoutes(a *API) {
	r.api.HandleFunc("/auth/login", a.Login).Methods(http.MethodPost)
	r.authed.HandleFunc("/auth/logout", a.Logout).Methods(http.MethodPost)
	r.authed.HandleFunc("/auth/me", a.Me).Methods(http.MethodGet)
}

func (r *Router) RegisterNavigationRoutes(a *API) {
	r.authed.HandleFunc("/navigation", a.GetNavigation).Methods(http.MethodGet)
	r.authed.HandleFunc("/navigation/current", a.SetCurrentPage).Methods(http.MethodPut)
}

// RegisterPageRoutes every route here is behind its destination's guard
func (r *Router) RegisterPageRoutes(a *API) {
	r.authed.Handle("/dashboard", a.requireDestination(domain.DestDashboard, a.GetDashboard)).Methods(http.MethodGet)

	r.authed.Handle("/devices", a.requireDestination(domain.DestDevices, a.ListDevices)).Methods(http.MethodGet)
	r.authed.Handle("/devices/export", a.requireDestination(domain.DestDevices, a.ExportDevices)).Methods(http.MethodGet)
	r.authed.Handle("/devices/{id}", a.requireDestination(domain.DestDevices, a.GetDevice)).Methods(http.MethodGet)

	r.authed.Handle("/users", a.requireDestination(domain.DestUsers, a.ListUsers)).Methods(http.MethodGet)
	r.authed.Handle("/users/{id}", a.requireDestination(domain.DestUsers, a.DeleteUser)).Methods(http.MethodDelete)

	r.authed.Handle("/analytics", a.requireDestination(domain.DestAnalytics, a.GetAnalytics)).Methods(http.MethodGet)
	r.authed.Handle("/security/permissions", a.requireDestination(domain.DestSecurity, a.GetPermissions)).Methods(http.MethodGet)

	r.authed.Handle("/settings", a.requireDestination(domain.DestSettings, a.GetSettings)).Methods(http.MethodGet)
	r.authed.Handle("/settings", a.requireDestination(domain.DestSettings, a.SaveSettings)).Methods(http.MethodPut)
}

func (r *Router) RegisterNotificationRoutes(a *API) {
	r.authed.HandleFunc("/notifications", a.ListNotifications).Methods(http.MethodGet)
	r.authed.HandleFunc("/notifications/unread-count", a.UnreadCount).Methods(http.MethodGet)
	r.authed.HandleFunc("/notifications/read-all", a.MarkAllRead).Methods(http.MethodPost)
	r.authed.HandleFunc("/notifications/{id}/read", a.MarkRead).Methods(http.MethodPost)
}

func (r *Router) RegisterChatRoutes(a *API) {
	r.authed.HandleFunc("/chat", a.GetChat).Methods(http.MethodGet)
	r.authed.HandleFunc("/chat/open", a.OpenChat).Methods(http.MethodPost)
	r.authed.HandleFunc("/chat/close", a.CloseChat).Methods(http.MethodPost)
	r.authed.HandleFunc("/chat/minimize", a.MinimizeChat).Methods(http.MethodPost)
	r.authed.HandleFunc("/chat/messages", a.SendChatMessage).Methods(http.MethodPost)
}

// NewHandler registers every route and returns the served handler
func NewHandler(a *API, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := NewRouter(logger)
	r.authed.Use(a.requireSession)
	r.RegisterHealthRoutes()
	r.RegisterAuthRoutes(a)
	r.RegisterNavigationRoutes(a)
	r.RegisterPageRoutes(a)
	r.RegisterNotificationRoutes(a)
	r.RegisterChatRoutes(a)
	return r.Handler(allowedOrigins)
}
