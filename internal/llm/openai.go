package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const extractionSystemPrompt = "Eres un experto en extracción de información estructurada. Respondes únicamente con JSON válido."

// OpenAIService talks to the OpenAI chat completion API.
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService builds the client. baseURL overrides the API endpoint,
// which tests use to point at a local fake server.
func NewOpenAIService(apiKey, model, baseURL string) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateReply sends the transcript and returns the assistant text verbatim.
func (s *OpenAIService) GenerateReply(ctx context.Context, messages []Message) (string, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		switch role {
		case openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
		default:
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    oaMsgs,
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// ExtractFields runs the extraction prompt at low temperature and parses the
// JSON object out of the response.
func (s *OpenAIService) ExtractFields(ctx context.Context, prompt string) (map[string]any, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty extraction response")
	}

	raw := stripFences(resp.Choices[0].Message.Content)
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("parse extraction: %w", err)
	}
	return fields, nil
}

// stripFences removes a surrounding markdown code fence. Models wrap JSON in
// fences despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
