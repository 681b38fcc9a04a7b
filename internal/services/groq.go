package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"studybot-backend/internal/models"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqGateway generates replies through Groq's OpenAI-compatible chat
// completions API.
type GroqGateway struct {
	client            *openai.Client
	model             string
	systemInstruction string
}

func NewGroqGateway(apiKey, model, systemInstruction string) *GroqGateway {
	client := openai.NewClient(
		option.WithBaseURL(groqBaseURL),
		option.WithAPIKey(apiKey),
	)
	return &GroqGateway{
		client:            &client,
		model:             model,
		systemInstruction: systemInstruction,
	}
}

func (g *GroqGateway) Generate(ctx context.Context, history []models.ChatMessage, question string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(g.systemInstruction))
	for _, m := range history {
		if m.Role == models.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(question))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    g.model,
	})
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GatewayError{Err: fmt.Errorf("model returned no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}
