// Package gemini implements the extraction provider backed by the Google
// Gemini generateContent API.
package gemini

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

// Client is a Gemini extraction client.
// It implements the extract.Extractor interface.
type Client struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

// Config is the configuration for the Gemini extractor.
// APIKey: Google AI API key (required)
// Model: Model name to use, defaults to "gemini-2.5-flash"
// BaseURL: API base URL, defaults to "https://generativelanguage.googleapis.com"
// HTTPClient: Custom HTTP client, if nil uses a default client with a
// 120 second timeout
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Gemini extraction client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini extractor: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
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
		"system_instruction": map[string]interface{}{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": extract.BuildPrompt(req)}},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: marshal request: %v", extract.ErrExtraction, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: create request: %v", extract.ErrExtraction, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: send request: %v", extract.ErrExtraction, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: gemini: API request failed with status %d: %s",
			extract.ErrExtraction, resp.StatusCode, string(body))
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: gemini: decode response: %v", extract.ErrExtraction, err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: gemini: no candidates returned", extract.ErrExtraction)
	}

	return extract.ParseDraft(response.Candidates[0].Content.Parts[0].Text, req)
}

// Close closes the client connection.
// The HTTP client does not require explicit closing; this method is
// retained for interface compatibility.
func (c *Client) Close() error {
	return nil
}
