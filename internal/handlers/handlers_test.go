package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studybot-backend/internal/models"
	"studybot-backend/internal/services"
)

// ─── Fakes ───

type fakeAuthService struct {
	outcome services.AuthOutcome
	err     error
}

func (f *fakeAuthService) RegisterOrVerify(ctx context.Context, userID, password string) (services.AuthOutcome, error) {
	return f.outcome, f.err
}

type fakeChatService struct {
	askReply   string
	askErr     error
	history    []models.TurnResponse
	historyErr error
}

func (f *fakeChatService) Ask(ctx context.Context, userID, password, question string) (string, error) {
	return f.askReply, f.askErr
}

func (f *fakeChatService) History(ctx context.Context, userID, password string) ([]models.TurnResponse, error) {
	return f.history, f.historyErr
}

func doJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// ─── /auth ───

func TestAuthenticate_AccountCreated(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{outcome: services.AuthCreated})

	rr := doJSON(t, h.Authenticate, models.AuthRequest{UserID: "alice", Password: "p1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp models.StatusResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Account created" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestAuthenticate_LoggedIn(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{outcome: services.AuthAuthenticated})

	rr := doJSON(t, h.Authenticate, models.AuthRequest{UserID: "alice", Password: "p1"})

	var resp models.StatusResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != "success" || resp.Message != "Logged in" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestAuthenticate_InvalidPassword(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{
		outcome: services.AuthRejected,
		err:     &services.UnauthorizedError{Message: "Invalid password"},
	})

	rr := doJSON(t, h.Authenticate, models.AuthRequest{UserID: "alice", Password: "wrong"})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rr.Code)
	}
	var resp models.StatusResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != "error" || resp.Message != "Invalid password" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestAuthenticate_MissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{
		outcome: services.AuthRejected,
		err:     &services.ValidationError{Message: "user_id and password are required"},
	})

	rr := doJSON(t, h.Authenticate, map[string]string{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestAuthenticate_BadBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Authenticate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

// ─── /chat ───

func TestChat_Success(t *testing.T) {
	h := NewChatHandler(&fakeChatService{askReply: "Four."})

	rr := doJSON(t, h.Chat, models.ChatRequest{UserID: "alice", Password: "p1", Question: "What is 2+2?"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Response != "Four." {
		t.Errorf("Expected response %q, got %q", "Four.", resp.Response)
	}
}

func TestChat_Unauthorized(t *testing.T) {
	h := NewChatHandler(&fakeChatService{askErr: &services.UnauthorizedError{Message: "Invalid password"}})

	rr := doJSON(t, h.Chat, models.ChatRequest{UserID: "alice", Password: "wrong", Question: "hi"})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("hi")) {
		t.Error("Unauthorized response leaked request content")
	}
}

func TestChat_GatewayFailure(t *testing.T) {
	h := NewChatHandler(&fakeChatService{
		askErr: &services.GatewayError{Err: errors.New("quota exceeded")},
	})

	rr := doJSON(t, h.Chat, models.ChatRequest{UserID: "alice", Password: "p1", Question: "hi"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
	var resp models.ChatResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Response == "" {
		t.Error("Expected an error description under the response key")
	}
}

func TestChat_NotConfigured(t *testing.T) {
	h := NewChatHandler(&fakeChatService{
		askErr: &services.NotConfiguredError{Message: "model gateway is not configured"},
	})

	rr := doJSON(t, h.Chat, models.ChatRequest{UserID: "alice", Password: "p1", Question: "hi"})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
}

func TestChat_MissingQuestion(t *testing.T) {
	h := NewChatHandler(&fakeChatService{askErr: &services.ValidationError{Message: "question is required"}})

	rr := doJSON(t, h.Chat, models.ChatRequest{UserID: "alice", Password: "p1"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

// ─── /history ───

func TestHistory_ReturnsTranscript(t *testing.T) {
	ts := "2024-03-01T12:00:00Z"
	h := NewChatHandler(&fakeChatService{history: []models.TurnResponse{
		{Role: "user", Message: "What is 2+2?", Timestamp: &ts},
		{Role: "assistant", Message: "Four.", Timestamp: &ts},
	}})

	rr := doJSON(t, h.History, models.AuthRequest{UserID: "alice", Password: "p1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var turns []models.TurnResponse
	if err := json.NewDecoder(rr.Body).Decode(&turns); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != "user" || turns[1].Role != "assistant" {
		t.Errorf("Turns out of order: %+v", turns)
	}
}

func TestHistory_NullTimestampRendering(t *testing.T) {
	h := NewChatHandler(&fakeChatService{history: []models.TurnResponse{
		{Role: "user", Message: "old question"},
	}})

	rr := doJSON(t, h.History, models.AuthRequest{UserID: "alice", Password: "p1"})

	var raw []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(raw))
	}
	ts, present := raw[0]["timestamp"]
	if !present {
		t.Fatal("Expected timestamp key to be present")
	}
	if ts != nil {
		t.Errorf("Expected null timestamp, got %v", ts)
	}
}

func TestHistory_EmptyTranscript(t *testing.T) {
	h := NewChatHandler(&fakeChatService{history: []models.TurnResponse{}})

	rr := doJSON(t, h.History, models.AuthRequest{UserID: "fresh", Password: "p1"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if body := bytes.TrimSpace(rr.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}

func TestHistory_Unauthorized(t *testing.T) {
	h := NewChatHandler(&fakeChatService{historyErr: &services.UnauthorizedError{Message: "Invalid password"}})

	rr := doJSON(t, h.History, models.AuthRequest{UserID: "alice", Password: "wrong"})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

// ─── Health ───

func TestHealth(t *testing.T) {
	h := NewInfoHandler("test")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", resp["status"])
	}
}
