// Package scrape adapts listing pages without feeds (the MOLEG public-data
// portal and similar) into normalized article records.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/deacon1876/autosensing/internal/news"
)

// Page describes one scraped listing page. Selector is the structural query
// for the anchor elements carrying title and href; BaseURL resolves
// root-relative hrefs. Scraped pages are always in the native language, so
// no translation applies.
type Page struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Selector string `yaml:"selector"`
	BaseURL  string `yaml:"base_url"`
}

// Adapter collects new matching entries from a single page. Only the
// native keyword list is consulted: the page carries native-language titles
// and nothing else to match against.
type Adapter struct {
	Page     Page
	Keywords news.KeywordSets
	Client   *http.Client
}

// NewAdapter returns an adapter with the default 10s page-fetch timeout.
func NewAdapter(page Page, keywords news.KeywordSets) *Adapter {
	return &Adapter{
		Page:     page,
		Keywords: news.KeywordSets{Native: keywords.Native},
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) Name() string { return a.Page.Name }

// Collect fetches the page and returns records for new links whose title
// matches the native keywords. The absolute link is the identifier; summary
// and translation both carry the title since the page exposes no body text.
func (a *Adapter) Collect(ctx context.Context, seen map[string]struct{}) ([]news.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.Page.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", a.Page.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", a.Page.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", a.Page.URL, err)
	}

	matched := a.collectFromDocument(doc, seen)
	slog.Info("page processed", "page", a.Page.Name, "matched", len(matched))
	return matched, nil
}

func (a *Adapter) collectFromDocument(doc *goquery.Document, seen map[string]struct{}) []news.Article {
	var matched []news.Article

	doc.Find(a.Page.Selector).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		link := href
		if strings.HasPrefix(href, "/") {
			link = a.Page.BaseURL + href
		}

		if _, dup := seen[link]; dup {
			return
		}
		if !a.Keywords.Matches(title) {
			return
		}

		seen[link] = struct{}{}
		matched = append(matched, news.Article{
			ID:         link,
			Source:     a.Page.Name,
			Title:      title,
			Summary:    title,
			Translated: title,
			Link:       link,
		})
	})

	return matched
}
