package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openaiDefaultBaseURL = "https://api.openai.com"

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewOpenAIProvider builds an OpenAI-backed provider. model and baseURL
// may be empty; defaults are applied per request.
func NewOpenAIProvider(apiKey, model, baseURL string, maxTokens int) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:    strings.TrimSpace(apiKey),
		model:     strings.TrimSpace(model),
		baseURL:   strings.TrimSpace(baseURL),
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiChatResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

type openaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) Name() string {
	model := p.model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return fmt.Sprintf("OpenAI (%s)", model)
}

func (p *OpenAIProvider) Available() bool {
	return p.apiKey != ""
}

// Synthesize requests a one-line summary. Timeout: 8s on top of the
// caller's context.
func (p *OpenAIProvider) Synthesize(ctx context.Context, paragraph, topic string) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoAPIKey
	}
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	model := p.model
	if model == "" {
		model = "gpt-4o-mini"
	}
	reqBody := openaiChatRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(paragraph, topic)},
		},
		MaxTokens:   p.maxTokens,
		Temperature: 0.7,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}
	url := strings.TrimRight(baseURL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp openaiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("openai: API error: %s", errResp.Error.Message)
	}

	var chatResp openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	out := oneLine(chatResp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: empty synthesis")
	}
	return out, nil
}
