package services

import (
	"context"
	"strings"
	"time"

	"studybot-backend/internal/models"
)

// ConversationStore is the slice of the conversation repository the chat
// service needs.
type ConversationStore interface {
	AppendExchange(ctx context.Context, userID, question, answer string) error
	ListByUser(ctx context.Context, userID string) ([]models.ConversationTurn, error)
}

// ChatService runs the chat exchange: authenticate, load history, generate,
// persist both turns, reply.
type ChatService struct {
	auth          *AuthService
	conversations ConversationStore
	gateway       ModelGateway
	genTimeout    time.Duration
}

func NewChatService(auth *AuthService, conversations ConversationStore, gateway ModelGateway, genTimeout time.Duration) *ChatService {
	return &ChatService{
		auth:          auth,
		conversations: conversations,
		gateway:       gateway,
		genTimeout:    genTimeout,
	}
}

// Ask handles one chat request. Authentication failure short-circuits
// before any history is read or written; a generation failure leaves the
// conversation log unchanged, so a retried request regenerates against the
// same history.
func (s *ChatService) Ask(ctx context.Context, userID, password, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", &ValidationError{Message: "question is required"}
	}

	if _, err := s.auth.RegisterOrVerify(ctx, userID, password); err != nil {
		return "", err
	}

	if s.gateway == nil {
		return "", &NotConfiguredError{Message: "model gateway is not configured: set GROQ_API_KEY or GEMINI_API_KEY"}
	}

	turns, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return "", &StoreError{Err: err}
	}

	history := make([]models.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		history = append(history, models.ChatMessage{Role: turn.Role, Content: turn.Message})
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	answer, err := s.gateway.Generate(genCtx, history, question)
	if err != nil {
		return "", err
	}

	if err := s.conversations.AppendExchange(ctx, userID, question, answer); err != nil {
		return "", &StoreError{Err: err}
	}

	return answer, nil
}

// History returns the user's full ordered transcript after authenticating.
func (s *ChatService) History(ctx context.Context, userID, password string) ([]models.TurnResponse, error) {
	if _, err := s.auth.RegisterOrVerify(ctx, userID, password); err != nil {
		return nil, err
	}

	turns, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	out := make([]models.TurnResponse, 0, len(turns))
	for _, turn := range turns {
		resp := models.TurnResponse{Role: turn.Role, Message: turn.Message}
		if turn.Timestamp != nil {
			ts := turn.Timestamp.UTC().Format(time.RFC3339)
			resp.Timestamp = &ts
		}
		out = append(out, resp)
	}

	return out, nil
}
