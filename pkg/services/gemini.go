package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"YakYak/pkg/config"
)

var (
	// ErrNoAPIKey means the provider credential is absent; operator-fixable,
	// reported before any request validation.
	ErrNoAPIKey = errors.New("GEMINI_API_KEY is not set")
	// ErrEmptyCompletion means the provider answered but the text was empty
	// after trimming. Never surfaced as a success.
	ErrEmptyCompletion = errors.New("gemini returned no text")
)

// maxOutputTokens caps the provider's output length per rewrite.
const maxOutputTokens = 2048

type GeminiService struct {
	apiKey string
	model  string
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey: config.GeminiAPIKey,
		model:  config.GeminiModel,
	}
}

// Rewrite sends one generateContent request with the built prompt and
// returns the trimmed rewritten text. Exactly one outbound call; the caller
// bounds it with a context deadline.
func (s *GeminiService) Rewrite(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return "", ErrNoAPIKey
	}

	reqBody := map[string]any{
		"contents": []any{
			map[string]any{
				"role":  "user",
				"parts": []any{map[string]any{"text": prompt}},
			},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": maxOutputTokens,
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", s.model, s.apiKey)
	log.Printf("[gemini] using model %s", s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	text := extractText(respBytes)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(text), nil
}

// extractText pulls the first candidate text part out of a generateContent
// response body.
func extractText(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	cands, ok := parsed["candidates"].([]any)
	if !ok || len(cands) == 0 {
		return ""
	}
	first, ok := cands[0].(map[string]any)
	if !ok {
		return ""
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return ""
	}
	parts, ok := content["parts"].([]any)
	if !ok {
		return ""
	}
	for _, p := range parts {
		if pm, ok := p.(map[string]any); ok {
			if txt, ok := pm["text"].(string); ok && strings.TrimSpace(txt) != "" {
				return txt
			}
		}
	}
	return ""
}
