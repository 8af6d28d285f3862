// Package gemini provides a Gemini-backed translation backend, used as a
// fallback when the free translation endpoint is unavailable.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const model = "gemini-1.5-flash"

// languageNames maps the target-language codes we configure to the names
// the prompt spells out. Unknown codes are passed through as-is.
var languageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
	"ja": "Japanese",
	"da": "Danish",
	"uk": "Ukrainian",
}

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *Client) Name() string { return "gemini" }

// Translate renders text in the target language. The model detects the
// source language itself.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	lang := targetLang
	if name, ok := languageNames[targetLang]; ok {
		lang = name
	}

	prompt := fmt.Sprintf(`Translate the following news text to %s.
Keep the meaning, tone and journalistic style of the original.
Do not translate proper names of brands or organizations.
Reply with the translated text only, no comments or labels.

Text to translate:
%s`, lang, text)

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	resp, err := c.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no response candidates")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
