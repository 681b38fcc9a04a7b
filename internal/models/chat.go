package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one immutable message in a user's transcript.
// Timestamp is nil for rows written before timestamping existed.
type ConversationTurn struct {
	ID        int64
	UserID    string
	Role      string
	Message   string
	Timestamp *time.Time
}

// ChatMessage is the role/text pair handed to a model gateway.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest is the payload of /chat.
type ChatRequest struct {
	Question string `json:"question"`
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// ChatResponse carries the generated reply, or an error description on
// failure, under the same key.
type ChatResponse struct {
	Response string `json:"response"`
}

// TurnResponse is one element of the /history array. Timestamp is RFC 3339
// or null.
type TurnResponse struct {
	Role      string  `json:"role"`
	Message   string  `json:"message"`
	Timestamp *string `json:"timestamp"`
}
