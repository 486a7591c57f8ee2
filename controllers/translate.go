package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"YakYak/pkg/config"
	svc "YakYak/pkg/services"
	"YakYak/pkg/translator"

	"github.com/gin-gonic/gin"
)

// Rewriter is the one outbound dependency of the translation endpoint.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// TranslateRequest is the wire shape of POST /api/translate.
type TranslateRequest struct {
	Message  string `json:"message"`
	FromRole string `json:"fromRole"`
	ToRole   string `json:"toRole"`
	FromLang string `json:"fromLang"`
	ToLang   string `json:"toLang"`
	Feedback string `json:"feedback"`
}

// Translate rewrites a message for a different audience role and optional
// target language. Stateless: it persists nothing; saving an exchange is
// the conversation endpoints' job, after this one already succeeded.
//
// Statuses: 200 {translated}, 400 bad input, 500 missing credential or
// provider failure, 502 empty provider output.
func Translate(rw Rewriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// credential check comes before anything else, including body parsing
		if strings.TrimSpace(config.GeminiAPIKey) == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing GEMINI_API_KEY. Add it to .env and restart the server."})
			return
		}

		var body TranslateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or empty message"})
			return
		}
		text := strings.TrimSpace(body.Message)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or empty message"})
			return
		}

		translated, err := runRewrite(c.Request.Context(), rw, text, body)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, svc.ErrEmptyCompletion) {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"translated": translated})
	}
}

// runRewrite builds the prompt and performs the single provider call under
// the configured deadline. Shared with the websocket channel.
func runRewrite(ctx context.Context, rw Rewriter, text string, body TranslateRequest) (string, error) {
	fromRole := body.FromRole
	if fromRole == "" {
		fromRole = translator.DefaultFromRole
	}
	toRole := body.ToRole
	if toRole == "" {
		toRole = translator.DefaultToRole
	}

	prompt := translator.BuildPrompt(translator.Request{
		OriginalMessage: text,
		FromRole:        fromRole,
		ToRole:          toRole,
		FromLanguage:    translator.NormalizeLanguage(body.FromLang),
		ToLanguage:      translator.NormalizeLanguage(body.ToLang),
		Feedback:        body.Feedback,
	})

	timeout := time.Duration(config.TranslateTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return rw.Rewrite(ctx, prompt)
}
