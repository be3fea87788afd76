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

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Gemini generateContent API.
type GeminiProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewGeminiProvider builds a Gemini-backed provider.
func NewGeminiProvider(apiKey, model, baseURL string, maxTokens int) *GeminiProvider {
	return &GeminiProvider{
		apiKey:    strings.TrimSpace(apiKey),
		model:     strings.TrimSpace(model),
		baseURL:   strings.TrimSpace(baseURL),
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("Gemini (%s)", p.modelOrDefault())
}

func (p *GeminiProvider) Available() bool {
	return p.apiKey != ""
}

func (p *GeminiProvider) modelOrDefault() string {
	if p.model == "" {
		return "gemini-3-flash-preview"
	}
	return p.model
}

// Synthesize requests a one-line summary. Timeout: 8s on top of the
// caller's context.
func (p *GeminiProvider) Synthesize(ctx context.Context, paragraph, topic string) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoAPIKey
	}
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	reqBody := geminiGenerateRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userPrompt(paragraph, topic)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: p.maxTokens,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(baseURL, "/"), p.modelOrDefault(), p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("gemini: API error: %s", errResp.Error.Message)
	}

	var genResp geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	out := oneLine(sb.String())
	if out == "" {
		return "", fmt.Errorf("gemini: empty synthesis")
	}
	return out, nil
}
