package synthesis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeminiSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		require.Equal(t, "You are an insightful analysis assistant.", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 1)
		require.Equal(t, "user", req.Contents[0].Role)
		require.Contains(t, req.Contents[0].Parts[0].Text, "'water'")
		require.Equal(t, 50, req.GenerationConfig.MaxOutputTokens)
		require.InDelta(t, 0.7, req.GenerationConfig.Temperature, 1e-9)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Water access "},{"text":"improved."}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "", srv.URL, 50)
	require.True(t, p.Available())

	line, err := p.Synthesize(context.Background(), "Access to safe water improved.", "water")
	require.NoError(t, err)
	require.Equal(t, "Water access improved.", line)
}

func TestGeminiSynthesizeAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("bad", "", srv.URL, 50)
	_, err := p.Synthesize(context.Background(), "text", "topic")
	require.Error(t, err)
	require.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiSynthesizeEmptyCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("key", "", srv.URL, 50)
	_, err := p.Synthesize(context.Background(), "text", "topic")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty response")
}

func TestGeminiNoKey(t *testing.T) {
	t.Parallel()

	p := NewGeminiProvider("", "", "", 50)
	require.False(t, p.Available())

	_, err := p.Synthesize(context.Background(), "text", "topic")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiModelInPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("key", "gemini-2.0-flash", srv.URL, 50)
	require.Equal(t, "Gemini (gemini-2.0-flash)", p.Name())

	_, err := p.Synthesize(context.Background(), "text", "topic")
	require.NoError(t, err)
}
