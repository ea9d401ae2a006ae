package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/config"
)

func TestChatClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != "mistral-tiny" || req.Temperature != 0.3 || req.MaxTokens != 800 || len(req.Messages) != 2 {
			t.Errorf("unexpected request %+v", req)
		}
		w.Write([]byte(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"{\"score\":8}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	client := NewChatClient(config.LLMConfig{
		APIKey: "secret", BaseURL: srv.URL + "/v1", Model: "mistral-tiny",
		Temperature: 0.3, MaxTokens: 800, Timeout: 5 * time.Second,
	})
	if !client.Configured() {
		t.Fatal("client with key should be configured")
	}

	got, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "coach"},
		{Role: "user", Content: "analyze"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"score":8}` {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestChatClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"down"}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"bad json", http.StatusOK, `not json`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewChatClient(config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: "m", Timeout: time.Second})
			_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
			if !apperrors.IsCode(err, apperrors.ErrCodeExternalService) {
				t.Fatalf("expected external service error, got %v", err)
			}
		})
	}
}

func TestChatClientNotConfigured(t *testing.T) {
	if NewChatClient(config.LLMConfig{}).Configured() {
		t.Fatal("client without key should not be configured")
	}
}
