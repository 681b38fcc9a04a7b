package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"studybot-backend/internal/models"
)

// GeminiGateway generates replies with Google's Gemini models. The prior
// turns ride in a chat session and the policy string rides as the system
// instruction.
type GeminiGateway struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGateway(ctx context.Context, apiKey, modelName, systemInstruction string) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &GeminiGateway{client: client, model: model}, nil
}

func (g *GeminiGateway) Close() {
	g.client.Close()
}

func (g *GeminiGateway) Generate(ctx context.Context, history []models.ChatMessage, question string) (string, error) {
	session := g.model.StartChat()
	for _, m := range history {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &GatewayError{Err: fmt.Errorf("model returned empty response")}
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
