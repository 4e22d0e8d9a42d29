package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/notification"
	"iot-dashboard/internal/service"

	"github.com/gorilla/mux"
)

// NotificationItem a notification with its age rendered in the session locale
type NotificationItem struct {
	domain.Notification
	Age string `json:"age"`
}

type FilterOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type notificationsResponse struct {
	Items       []NotificationItem `json:"items"`
	UnreadCount int                `json:"unreadCount"`
	Total       int                `json:"total"`
	Filters     []FilterOption     `json:"filters"`
}

type unreadResponse struct {
	UnreadCount int `json:"unreadCount"`
}

func (a *API) ListNotifications(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	center := sess.Notifications()
	q := r.URL.Query()

	list, err := center.List(q.Get("filter"), q.Get("q"))
	if err != nil {
		a.writeError(w, r, fmt.Errorf("%w: %v", service.ErrInvalidArgument, err))
		return
	}

	locale := sess.Locale()
	now := time.Now()
	items := make([]NotificationItem, 0, len(list))
	for _, n := range list {
		items = append(items, NotificationItem{Notification: n, Age: a.Catalog.RelativeTime(locale, now, n.Timestamp)})
	}
	filters := make([]FilterOption, 0, len(notification.Filters))
	for _, f := range notification.Filters {
		filters = append(filters, FilterOption{ID: f, Label: a.Catalog.Text(locale, "filter."+f)})
	}

	writeJSON(w, http.StatusOK, Ok(notificationsResponse{
		Items:       items,
		UnreadCount: center.UnreadCount(),
		Total:       center.Len(),
		Filters:     filters,
	}))
}

func (a *API) UnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(unreadResponse{UnreadCount: sessionFrom(r).Notifications().UnreadCount()}))
}

// MarkRead an unknown or already-read id is not an error
func (a *API) MarkRead(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.MarkNotificationRead(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, Ok(unreadResponse{UnreadCount: sess.Notifications().UnreadCount()}))
}

func (a *API) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.MarkAllNotificationsRead()
	writeJSON(w, http.StatusOK, Ok(unreadResponse{UnreadCount: sess.Notifications().UnreadCount()}))
}
