package services

import (
	"context"

	"studybot-backend/internal/models"
)

// ModelGateway generates a reply to a question given the prior turns of the
// conversation. The system instruction is fixed at construction and passed
// through unmodified on every call. A single failed call surfaces as
// *GatewayError; there is no retry.
type ModelGateway interface {
	Generate(ctx context.Context, history []models.ChatMessage, question string) (string, error)
}
