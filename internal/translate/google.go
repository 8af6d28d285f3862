package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleBackend calls the public Google Translate endpoint (the same AJAX
// API the googletrans family of clients wraps). No key required; the
// endpoint auto-detects the source language.
type GoogleBackend struct {
	client   *http.Client
	endpoint string
}

// NewGoogleBackend returns a backend with a 15s request timeout.
func NewGoogleBackend() *GoogleBackend {
	return &GoogleBackend{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: googleEndpoint,
	}
}

func (g *GoogleBackend) Name() string { return "google" }

func (g *GoogleBackend) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google translate read: %w", err)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse unpacks the endpoint's nested-array payload: the
// first element is a list of [translatedSegment, originalSegment, ...]
// tuples that have to be concatenated.
func parseGoogleResponse(body []byte) (string, error) {
	var response []interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("google translate parse: %w", err)
	}
	if len(response) == 0 {
		return "", errors.New("google translate: empty response")
	}

	segments, ok := response[0].([]interface{})
	if !ok {
		return "", errors.New("google translate: unexpected response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		tuple, ok := seg.([]interface{})
		if !ok || len(tuple) == 0 {
			continue
		}
		if s, ok := tuple[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
