package services

import (
	"context"
	"errors"
	"testing"
)

func TestRewriteWithoutAPIKey(t *testing.T) {
	s := &GeminiService{model: "gemini-3-flash-preview"}
	if _, err := s.Rewrite(context.Background(), "prompt"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestExtractText(t *testing.T) {
	body := []byte(`{"candidates": [{"content": {"parts": [{"text": "We're updating the login system first."}]}}]}`)
	if got := extractText(body); got != "We're updating the login system first." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextEmptyCases(t *testing.T) {
	cases := []string{
		`not json`,
		`{}`,
		`{"candidates": []}`,
		`{"candidates": [{"content": {"parts": []}}]}`,
		`{"candidates": [{"content": {"parts": [{"text": "   "}]}}]}`,
	}
	for _, body := range cases {
		if got := extractText([]byte(body)); got != "" {
			t.Fatalf("body %s: expected empty, got %q", body, got)
		}
	}
}
