package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"studybot-backend/internal/models"
	"studybot-backend/internal/services"
)

type authService interface {
	RegisterOrVerify(ctx context.Context, userID, password string) (services.AuthOutcome, error)
}

type AuthHandler struct {
	auth authService
}

func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Authenticate handles POST /auth: implicit registration on first sight of
// a user_id, password verification afterwards.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.StatusResponse{Status: "error", Message: "Invalid request body"})
		return
	}

	outcome, err := h.auth.RegisterOrVerify(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeStatusError(w, err)
		return
	}

	message := "Logged in"
	if outcome == services.AuthCreated {
		message = "Account created"
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "success", Message: message})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeStatusError maps a service error onto the {status, message} envelope
// used by /auth and /history.
func writeStatusError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, models.StatusResponse{Status: "error", Message: e.Message})
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, models.StatusResponse{Status: "error", Message: e.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, models.StatusResponse{Status: "error", Message: "An unexpected error occurred"})
	}
}
