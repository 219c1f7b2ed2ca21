package ai

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// LLMService is the LLM service interface.
type LLMService interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Complete sends a single prompt and returns the raw model text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is returned when a provider answers without any content.
var ErrEmptyResponse = errors.New("empty response")

// NewLLMService creates a new LLMService for the given provider config.
func NewLLMService(ctx context.Context, cfg *LLMConfig) (LLMService, error) {
	if !cfg.IsConfigured() {
		return nil, errors.Errorf("%s provider is not configured", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIService(cfg), nil
	case ProviderGemini:
		return newGeminiService(ctx, cfg)
	default:
		return nil, errors.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

type openAIService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func newOpenAIService(cfg *LLMConfig) *openAIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (s *openAIService) Name() string { return ProviderOpenAI }

func (s *openAIService) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

type geminiService struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
}

func newGeminiService(ctx context.Context, cfg *LLMConfig) (*geminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	return &geminiService{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (s *geminiService) Name() string { return ProviderGemini }

func (s *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(s.maxTokens),
		Temperature:      genai.Ptr(s.temperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
