package handlers

import "net/http"

type InfoHandler struct {
	env string
}

func NewInfoHandler(env string) *InfoHandler {
	return &InfoHandler{env: env}
}

func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "studybot-backend",
		"status":  "ok",
		"env":     h.env,
	})
}
