package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"studybot-backend/internal/models"
	"studybot-backend/internal/services"
)

type chatService interface {
	Ask(ctx context.Context, userID, password, question string) (string, error)
	History(ctx context.Context, userID, password string) ([]models.TurnResponse, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /chat. Success and chat-level failures both answer
// under the "response" key; auth failures use the status envelope.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{Response: "Invalid request body"})
		return
	}

	answer, err := h.chat.Ask(r.Context(), req.UserID, req.Password, req.Question)
	if err != nil {
		switch e := err.(type) {
		case *services.ValidationError:
			writeJSON(w, http.StatusBadRequest, models.ChatResponse{Response: e.Message})
		case *services.UnauthorizedError:
			writeJSON(w, http.StatusUnauthorized, models.StatusResponse{Status: "error", Message: e.Message})
		case *services.NotConfiguredError:
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Response: e.Message})
		case *services.GatewayError:
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Response: e.Error()})
		case *services.StoreError:
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Response: "failed to save conversation: " + e.Err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Response: "An unexpected error occurred"})
		}
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: answer})
}

// History handles POST /history: the full ordered transcript, every turn
// with role, message, and an RFC 3339 timestamp or null.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.StatusResponse{Status: "error", Message: "Invalid request body"})
		return
	}

	turns, err := h.chat.History(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeStatusError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, turns)
}
