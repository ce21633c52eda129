package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/myville/backend/internal/config"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/metrics"
)

var ErrChatUpstream = errors.New("chat upstream failed")

// ApologyReply is returned verbatim whenever the upstream call fails, so the
// client always has something renderable.
const ApologyReply = "Извините, произошла ошибка. Попробуйте позже."

const systemPrompt = "Ты — дружелюбный помощник городского приложения MyVille. " +
	"Помогаешь жителям города: подсказываешь, как сообщить о проблеме " +
	"(дороги, ЖКХ, освещение, мусор, озеленение, транспорт, безопасность), " +
	"как работают статусы обращений и голосование. Отвечай кратко и по делу, " +
	"на русском языке."

// ChatService proxies the in-app assistant to an OpenAI-compatible upstream,
// prepending the city-assistant persona to every conversation.
type ChatService struct {
	cfg    *config.Config
	client *http.Client
}

func NewChatService(cfg *config.Config) *ChatService {
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.ChatTimeout},
	}
}

type upstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type upstreamRequest struct {
	Model       string            `json:"model"`
	Messages    []upstreamMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
}

type upstreamResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete forwards the conversation and returns the assistant's reply. On
// any upstream failure it returns ApologyReply together with ErrChatUpstream;
// the caller decides the HTTP status.
func (s *ChatService) Complete(ctx context.Context, req *dto.ChatRequest) (string, error) {
	messages := make([]upstreamMessage, 0, len(req.Messages)+1)
	messages = append(messages, upstreamMessage{Role: "system", Content: systemPrompt})
	for _, m := range req.Messages {
		messages = append(messages, upstreamMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(upstreamRequest{
		Model:       s.cfg.ChatModel,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return s.fail(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ChatAPIURL, bytes.NewReader(body))
	if err != nil {
		return s.fail(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.ChatAPIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return s.fail(fmt.Errorf("call upstream: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return s.fail(fmt.Errorf("upstream status %d: %s", resp.StatusCode, raw))
	}

	var parsed upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return s.fail(fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return s.fail(errors.New("empty completion"))
	}

	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
	return parsed.Choices[0].Message.Content, nil
}

func (s *ChatService) fail(err error) (string, error) {
	slog.Error("chat completion failed", "error", err)
	metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
	return ApologyReply, ErrChatUpstream
}
