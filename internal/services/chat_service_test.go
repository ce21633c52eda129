package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/myville/backend/internal/config"
	"github.com/myville/backend/internal/dto"
)

func chatConfig(url string) *config.Config {
	return &config.Config{
		ChatAPIURL:  url,
		ChatAPIKey:  "free-model",
		ChatModel:   "openai",
		ChatTimeout: 2 * time.Second,
	}
}

func chatReq(content string) *dto.ChatRequest {
	return &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: content}},
	}
}

func TestChatCompleteForwardsConversation(t *testing.T) {
	var captured upstreamRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer free-model" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode upstream request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Обратитесь через раздел Сообщить"}}]}`))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	text, err := svc.Complete(context.Background(), chatReq("как сообщить о яме?"))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "Обратитесь через раздел Сообщить" {
		t.Errorf("Complete() = %q", text)
	}

	if captured.Model != "openai" {
		t.Errorf("upstream model = %q, want openai", captured.Model)
	}
	if captured.Temperature != 0.7 {
		t.Errorf("upstream temperature = %v, want 0.7", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("upstream messages = %+v, want system prompt prepended", captured.Messages)
	}
	if captured.Messages[1].Content != "как сообщить о яме?" {
		t.Errorf("user message = %q", captured.Messages[1].Content)
	}
}

func TestChatCompleteUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	text, err := svc.Complete(context.Background(), chatReq("hi"))
	if !errors.Is(err, ErrChatUpstream) {
		t.Fatalf("Complete() error = %v, want ErrChatUpstream", err)
	}
	if text != ApologyReply {
		t.Errorf("Complete() = %q, want the canned apology", text)
	}
}

func TestChatCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	svc := NewChatService(chatConfig(srv.URL))
	text, err := svc.Complete(context.Background(), chatReq("hi"))
	if !errors.Is(err, ErrChatUpstream) {
		t.Fatalf("Complete() error = %v, want ErrChatUpstream", err)
	}
	if text != ApologyReply {
		t.Errorf("Complete() = %q, want the canned apology", text)
	}
}
