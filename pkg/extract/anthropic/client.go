// Package anthropic implements the extraction provider backed by the
// Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventmem/eventmem-go/pkg/extract"
)

const systemPrompt = "You extract structured event information from short messages. " +
	"Reply with exactly one JSON object and nothing else."

// Client is an Anthropic extraction client.
// It implements the extract.Extractor interface over the Messages API;
// the system instruction goes in the top-level system field, not a message.
type Client struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

// Config is the configuration for the Anthropic extractor.
// APIKey: Anthropic API key (required)
// Model: Model name to use, defaults to "claude-3-5-sonnet-20240620"
// BaseURL: API base URL, defaults to "https://api.anthropic.com"
// HTTPClient: Custom HTTP client, if nil uses a default client with a
// 120 second timeout
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Anthropic extraction client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic extractor: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-20240620"
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	return &Client{
		client:  client,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Extract turns a free-form message into a structured draft.
//
// API failures and unparseable responses are reported as
// extract.ErrExtraction.
func (c *Client) Extract(ctx context.Context, req *extract.Request) (*extract.Draft, error) {
	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": 1024,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": extract.BuildPrompt(req)},
		},
		"temperature": 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: marshal request: %v", extract.ErrExtraction, err)
	}

	url := fmt.Sprintf("%s/v1/messages", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: create request: %v", extract.ErrExtraction, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: send request: %v", extract.ErrExtraction, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: anthropic: API request failed with status %d: %s",
			extract.ErrExtraction, resp.StatusCode, string(body))
	}

	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: anthropic: decode response: %v", extract.ErrExtraction, err)
	}
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("%w: anthropic: no content returned", extract.ErrExtraction)
	}

	return extract.ParseDraft(response.Content[0].Text, req)
}

// Close closes the client connection.
// The HTTP client does not require explicit closing; this method is
// retained for interface compatibility.
func (c *Client) Close() error {
	return nil
}
