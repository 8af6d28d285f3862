// Package rss adapts RSS/Atom feeds into normalized article records.
package rss

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/deacon1876/autosensing/internal/metrics"
	"github.com/deacon1876/autosensing/internal/news"
)

// Feed is one configured feed source.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Lang string `yaml:"lang"`
}

// Parser is the feed-parsing collaborator. *gofeed.Parser satisfies it.
type Parser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// Translator renders text in the target language. It never fails; the
// gateway substitutes a placeholder on outage.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) string
}

// Adapter collects new matching entries from a single feed.
type Adapter struct {
	Feed       Feed
	Keywords   news.KeywordSets
	TargetLang string
	Parser     Parser
	Translator Translator
}

// entry is the validated view of a gofeed item. Every field is optional;
// gofeed folds the Atom id and the RSS guid into GUID, so the identifier
// ladder is GUID first, link second.
type entry struct {
	GUID      string
	Link      string
	Title     string
	Summary   string
	Published string
}

func newEntry(item *gofeed.Item) entry {
	e := entry{
		GUID:      item.GUID,
		Link:      item.Link,
		Title:     strings.TrimSpace(item.Title),
		Summary:   strings.TrimSpace(item.Description),
		Published: item.Published,
	}
	if e.Summary == "" {
		e.Summary = strings.TrimSpace(item.Content)
	}
	return e
}

func (e entry) identifier() string {
	if e.GUID != "" {
		return e.GUID
	}
	return e.Link
}

func (a *Adapter) Name() string { return a.Feed.Name }

// Collect fetches the feed and returns records for entries that are new and
// match the keyword lists. Matching identifiers are added to seen so no
// later source or later run reprocesses them; entries that fail the keyword
// check are left out of seen on purpose, so a future keyword-list change
// can still surface them.
func (a *Adapter) Collect(ctx context.Context, seen map[string]struct{}) ([]news.Article, error) {
	feed, err := a.Parser.ParseURLWithContext(a.Feed.URL, ctx)
	if err != nil {
		return nil, err
	}

	metrics.Global.AddEntriesProcessed(int64(len(feed.Items)))

	var matched []news.Article
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		e := newEntry(item)

		id := e.identifier()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}

		combined := news.CombinedText(e.Title, e.Summary)
		if !a.Keywords.Matches(combined) {
			continue
		}

		translated := e.Summary
		if a.Feed.Lang != a.TargetLang {
			translated = a.Translator.Translate(ctx, combined, a.TargetLang)
		}

		seen[id] = struct{}{}
		matched = append(matched, news.Article{
			ID:         id,
			Source:     a.Feed.Name,
			Title:      e.Title,
			Summary:    e.Summary,
			Translated: translated,
			Link:       e.Link,
			Published:  e.Published,
		})
	}

	slog.Info("feed processed", "feed", a.Feed.Name, "entries", len(feed.Items), "matched", len(matched))
	return matched, nil
}
