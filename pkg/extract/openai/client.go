// Package openai implements the extraction provider backed by the OpenAI
// chat completion API.
package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/eventmem/eventmem-go/pkg/extract"
)

// systemPrompt constrains the model to the structured-JSON contract.
const systemPrompt = "You extract structured event information from short messages. " +
	"Reply with exactly one JSON object and nothing else."

// Client is an OpenAI extraction client.
// It implements the extract.Extractor interface.
type Client struct {
	client *openai.Client
	model  string
}

// Config is the configuration for the OpenAI extractor.
// APIKey: OpenAI API key (required)
// Model: Model name to use, defaults to "gpt-4o-mini"
// BaseURL: API base URL, defaults to the OpenAI official address
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewClient creates a new OpenAI extraction client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("openai extractor: API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

// Extract turns a free-form message into a structured draft.
//
// The call runs at temperature 0 so repeated commits of the same message
// stay reproducible. API failures and unparseable responses are reported
// as extract.ErrExtraction.
func (c *Client) Extract(ctx context.Context, req *extract.Request) (*extract.Draft, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: extract.BuildPrompt(req)},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", extract.ErrExtraction, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai: no choices returned", extract.ErrExtraction)
	}

	return extract.ParseDraft(resp.Choices[0].Message.Content, req)
}

// Close closes the client connection.
// The OpenAI SDK client does not require explicit closing; this method is
// retained for interface compatibility.
func (c *Client) Close() error {
	return nil
}
