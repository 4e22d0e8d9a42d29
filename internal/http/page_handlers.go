package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"iot-dashboard/internal/service"

	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (a *API) GetDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := a.Dashboard.Overview(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (a *API) deviceQuery(r *http.Request) service.ListDevicesRequest {
	sess := sessionFrom(r)
	q := r.URL.Query()
	return service.ListDevicesRequest{
		Role:   sess.Role(),
		Locale: sess.Locale(),
		Search: q.Get("q"),
		Status: q.Get("status"),
	}
}

func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	resp, err := a.Devices.ListDevices(r.Context(), a.deviceQuery(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// ExportDevices the filtered list as an xlsx attachment
func (a *API) ExportDevices(w http.ResponseWriter, r *http.Request) {
	data, err := a.Devices.ExportDevices(r.Context(), a.deviceQuery(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("devices_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *API) GetDevice(w http.ResponseWriter, r *http.Request) {
	dev, err := a.Devices.GetDevice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(dev))
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := a.Users.ListUsers(r.Context(), service.ListUsersRequest{
		Actor:  sessionFrom(r).User,
		Search: q.Get("q"),
		Role:   q.Get("role"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := a.Users.DeleteUser(r.Context(), service.DeleteUserRequest{
		Actor:  sessionFrom(r).User,
		UserID: mux.Vars(r)["id"],
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

func (a *API) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := a.Analytics.Report(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(report))
}

func (a *API) GetPermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(a.Security.Matrix()))
}

func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(a.Settings.Get(sessionFrom(r))))
}

func (a *API) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req service.SaveSettingsRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	resp, err := a.Settings.Save(r.Context(), sessionFrom(r), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
