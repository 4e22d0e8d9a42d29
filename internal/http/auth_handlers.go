package httpapi

import (
	"errors"
	"net/http"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/service"
)

type loginBody struct {
	Role   string `json:"role"`
	Locale string `json:"locale,omitempty"`
}

// NavItem a destination with its label in the request locale
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type meResponse struct {
	User         domain.User `json:"user"`
	RoleLabel    string      `json:"roleLabel"`
	Locale       string      `json:"locale"`
	Direction    string      `json:"direction"`
	Destinations []NavItem   `json:"destinations"`
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	role, err := domain.ParseRole(body.Role)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	locale := body.Locale
	if !a.Catalog.Supports(locale) {
		locale = a.Catalog.Negotiate(r.Header.Get("Accept-Language"))
	}

	resp, err := a.Auth.Login(r.Context(), service.LoginRequest{Role: role, Locale: locale})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.Auth.Logout(r.Context(), sessionFrom(r).ID); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	locale := sess.Locale()
	writeJSON(w, http.StatusOK, Ok(meResponse{
		User:         sess.User,
		RoleLabel:    a.Catalog.Text(locale, "role."+sess.Role().String()),
		Locale:       locale,
		Direction:    a.Catalog.Direction(locale),
		Destinations: a.navItems(sess),
	}))
}

func (a *API) navItems(sess *service.Session) []NavItem {
	locale := sess.Locale()
	visible := a.Access.VisibleDestinations(sess.Role())
	items := make([]NavItem, 0, len(visible))
	for _, d := range visible {
		items = append(items, NavItem{ID: d.ID, Label: a.Catalog.Text(locale, d.Label)})
	}
	return items
}

type navigationResponse struct {
	Destinations []NavItem `json:"destinations"`
	CurrentPage  string    `json:"currentPage"`
}

func (a *API) GetNavigation(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, http.StatusOK, Ok(navigationResponse{
		Destinations: a.navItems(sess),
		CurrentPage:  sess.CurrentPage(),
	}))
}

// SetCurrentPage a page the role may not open answers with the access-denied state and
// leaves the current page unchanged
func (a *API) SetCurrentPage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page string `json:"page"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	sess := sessionFrom(r)
	if err := sess.Navigate(body.Page); err != nil {
		if errors.Is(err, access.ErrPermissionDenied) {
			a.writeAccessDenied(w, r, body.Page)
			return
		}
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(navigationResponse{
		Destinations: a.navItems(sess),
		CurrentPage:  sess.CurrentPage(),
	}))
}
