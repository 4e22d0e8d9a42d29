package httpapi

import (
	"net/http"
)

func (a *API) GetChat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(sessionFrom(r).Chat().State()))
}

func (a *API) OpenChat(w http.ResponseWriter, r *http.Request) {
	panel := sessionFrom(r).Chat()
	panel.Open()
	writeJSON(w, http.StatusOK, Ok(panel.State()))
}

// CloseChat drops replies still waiting on their delay
func (a *API) CloseChat(w http.ResponseWriter, r *http.Request) {
	panel := sessionFrom(r).Chat()
	panel.Close()
	writeJSON(w, http.StatusOK, Ok(panel.State()))
}

func (a *API) MinimizeChat(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Minimized *bool `json:"minimized"`
	}{}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	minimized := true
	if body.Minimized != nil {
		minimized = *body.Minimized
	}
	panel := sessionFrom(r).Chat()
	if err := panel.Minimize(minimized); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(panel.State()))
}

// SendChatMessage appends the user message; the reply arrives after the panel's delay
func (a *API) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	msg, err := sessionFrom(r).Chat().Send(body.Message)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(msg))
}
