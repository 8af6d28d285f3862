// Package app sequences one sensing run: load the identifier store, collect
// from every source, persist the store, then render and dispatch the digest.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deacon1876/autosensing/internal/metrics"
	"github.com/deacon1876/autosensing/internal/news"
)

// Source is one article source adapter. Collect consults and mutates the
// shared seen-set; the orchestrator owns that set for the whole run, and
// sources run strictly one after another.
type Source interface {
	Name() string
	Collect(ctx context.Context, seen map[string]struct{}) ([]news.Article, error)
}

// Store persists identifiers between runs.
type Store interface {
	Load() (map[string]struct{}, error)
	Save(ids map[string]struct{}) error
}

// Mailer delivers the rendered digest.
type Mailer interface {
	Send(subject, body string) error
}

// SourceResult records the outcome of one source, so per-source failures
// stay visible in the logs without aborting the run.
type SourceResult struct {
	Name    string
	Matched int
	Err     error
}

// App wires the run dependencies. Now is injectable for deterministic
// digest rendering in tests.
type App struct {
	Store   Store
	Sources []Source
	Mailer  Mailer
	Now     func() time.Time
}

func New(store Store, sources []Source, mailer Mailer) *App {
	return &App{Store: store, Sources: sources, Mailer: mailer, Now: time.Now}
}

// Run performs one cycle. Only store I/O and delivery errors are fatal;
// every per-source failure is contained. The store is persisted before any
// dispatch attempt, so a delivery failure can never cause a duplicate
// notification on the next run.
func (a *App) Run(ctx context.Context) error {
	seen, err := a.Store.Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("load identifier store: %w", err)
	}
	slog.Info("identifier store loaded", "known", len(seen))

	var all []news.Article
	results := make([]SourceResult, 0, len(a.Sources))
	for _, src := range a.Sources {
		records, err := src.Collect(ctx, seen)
		results = append(results, SourceResult{Name: src.Name(), Matched: len(records), Err: err})
		if err != nil {
			slog.Error("source failed, continuing", "source", src.Name(), "error", err)
			metrics.Global.IncrementSourceErrors()
			continue
		}
		all = append(all, records...)
	}
	logRunSummary(results)

	if err := a.Store.Save(seen); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("persist identifier store: %w", err)
	}

	metrics.Global.AddArticlesMatched(int64(len(all)))
	if len(all) == 0 {
		slog.Info("no new articles matched the keywords, skipping dispatch")
		metrics.Global.SetLastRun()
		return nil
	}

	news.SortByPublished(all)
	body := news.RenderDigest(all, a.Now())

	if err := a.Mailer.Send(news.Subject, body); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("send digest: %w", err)
	}

	slog.Info("digest sent", "articles", len(all))
	metrics.Global.IncrementDigestsSent()
	metrics.Global.SetLastRun()
	return nil
}

func logRunSummary(results []SourceResult) {
	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}
	slog.Info("sources processed", "ok", ok, "total", len(results))
}
