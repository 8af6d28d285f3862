// Package translate wraps the translation collaborators behind a gateway
// that never fails: when every backend errors out, the caller gets a marked
// placeholder instead, so a translation outage cannot stall the pipeline.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// maxInputLen caps the text sent to translation backends. Long feed bodies
// get cut rather than rejected.
const maxInputLen = 4000

// Backend performs one translation attempt. Source language detection is
// the backend's job; only the target language is passed through.
type Backend interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Gateway tries each backend in order and falls back to an error
// placeholder when all of them fail.
type Gateway struct {
	backends []Backend
	onError  func() // optional hook, counts contained failures
}

// NewGateway builds a gateway over the given backends, tried in order.
func NewGateway(backends ...Backend) *Gateway {
	return &Gateway{backends: backends}
}

// OnError registers a hook invoked once per fully failed translation.
func (g *Gateway) OnError(fn func()) {
	g.onError = fn
}

// Translate returns the translated text, or a placeholder embedding the
// last backend error when no backend succeeds. It never returns an error.
func (g *Gateway) Translate(ctx context.Context, text, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if len(text) > maxInputLen {
		text = text[:maxInputLen] + "..."
	}

	var lastErr error
	for _, b := range g.backends {
		out, err := b.Translate(ctx, text, targetLang)
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out)
		}
		if err == nil {
			err = fmt.Errorf("empty translation")
		}
		lastErr = err
		slog.Warn("translation backend failed", "backend", b.Name(), "target", targetLang, "error", err)
	}

	if g.onError != nil {
		g.onError()
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no translation backend configured")
	}
	return fmt.Sprintf("(번역 오류: %v)", lastErr)
}
