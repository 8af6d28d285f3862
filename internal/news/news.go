// Package news holds the article record shape shared by all source
// adapters, the keyword matcher and the digest renderer.
package news

import (
	"sort"
	"strings"
)

// Article is one matched item, normalized across feed and scrape sources.
// ID is the stable dedup key: feed guid/id or the canonical page link.
type Article struct {
	ID         string
	Source     string
	Title      string
	Summary    string
	Translated string // equals Summary when the source language is the target language
	Link       string
	Published  string // raw source-provided timestamp, kept opaque
}

// KeywordSets carries the two configured keyword lists. Native keywords are
// in the digest language, foreign keywords catch untranslated sources.
type KeywordSets struct {
	Native  []string `yaml:"native"`
	Foreign []string `yaml:"foreign"`
}

// Matches reports whether any configured keyword appears in text.
// Matching is case-insensitive substring containment, nothing smarter:
// a short keyword inside a longer unrelated word still counts.
func (k KeywordSets) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range k.Native {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, kw := range k.Foreign {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CombinedText joins title and summary the way the matcher and the
// translator both consume them.
func CombinedText(title, summary string) string {
	return title + "\n" + summary
}

// SortByPublished orders articles by the raw Published string, descending.
// This is plain lexicographic comparison, not a date parse, so mixed date
// formats may interleave incorrectly; entries with an empty Published sort
// last. Known approximation, kept deliberately.
func SortByPublished(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published > articles[j].Published
	})
}
