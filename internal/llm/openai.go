package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mwalden/termlens/internal/model"
)

// OpenAIProvider generates candidates via the OpenAI Chat Completions API.
// A BaseURL override points it at any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks the API with a lightweight model-list call.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// ExtractDefinitions proposes definition candidates.
func (p *OpenAIProvider) ExtractDefinitions(ctx context.Context, text string) ([]model.RawDefinition, error) {
	var resp definitionsResponse
	if err := p.call(ctx, definitionsSystemPrompt, definitionsUserPrompt(text), &resp); err != nil {
		return nil, fmt.Errorf("extract definitions: %w", err)
	}
	return resp.toModel(), nil
}

// FindUsages proposes usage candidates.
func (p *OpenAIProvider) FindUsages(ctx context.Context, text string, knownTerms []string) ([]model.RawUsage, error) {
	var resp usagesResponse
	if err := p.call(ctx, usagesSystemPrompt, usagesUserPrompt(text, knownTerms), &resp); err != nil {
		return nil, fmt.Errorf("find usages: %w", err)
	}
	return resp.toModel(), nil
}

// FindSuggestions proposes terms that should be defined.
func (p *OpenAIProvider) FindSuggestions(ctx context.Context, text string, knownTerms []string) ([]model.Suggestion, error) {
	var resp suggestionsResponse
	if err := p.call(ctx, suggestionsSystemPrompt, suggestionsUserPrompt(text, knownTerms), &resp); err != nil {
		return nil, fmt.Errorf("find suggestions: %w", err)
	}
	return resp.toModel(), nil
}

// FindCrossReferences proposes structural references.
func (p *OpenAIProvider) FindCrossReferences(ctx context.Context, text string) ([]model.CrossReference, error) {
	var resp referencesResponse
	if err := p.call(ctx, referencesSystemPrompt, referencesUserPrompt(text), &resp); err != nil {
		return nil, fmt.Errorf("find cross-references: %w", err)
	}
	return resp.toModel(), nil
}

func (p *OpenAIProvider) call(ctx context.Context, systemPrompt, userPrompt string, out any) error {
	timeout := time.Duration(p.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := p.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from OpenAI")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
