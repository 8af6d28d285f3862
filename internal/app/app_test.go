package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deacon1876/autosensing/internal/news"
)

type fakeStore struct {
	initial map[string]struct{}
	loadErr error
	saveErr error
	saved   map[string]struct{}
	events  *[]string
}

func (f *fakeStore) Load() (map[string]struct{}, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.initial == nil {
		f.initial = map[string]struct{}{}
	}
	return f.initial, nil
}

func (f *fakeStore) Save(ids map[string]struct{}) error {
	if f.events != nil {
		*f.events = append(*f.events, "save")
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = ids
	return nil
}

type fakeSource struct {
	name    string
	records []news.Article
	err     error
	called  bool
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Collect(ctx context.Context, seen map[string]struct{}) ([]news.Article, error) {
	f.called = true
	for _, r := range f.records {
		seen[r.ID] = struct{}{}
	}
	return f.records, f.err
}

type fakeMailer struct {
	subject string
	body    string
	sends   int
	err     error
	events  *[]string
}

func (f *fakeMailer) Send(subject, body string) error {
	if f.events != nil {
		*f.events = append(*f.events, "send")
	}
	f.sends++
	f.subject, f.body = subject, body
	return f.err
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
}

func TestRunIsolatesSourceFailures(t *testing.T) {
	store := &fakeStore{}
	broken := &fakeSource{name: "broken", err: errors.New("dns failure")}
	healthy := &fakeSource{name: "healthy", records: []news.Article{
		{ID: "a1", Source: "healthy", Title: "GDPR fine", Summary: "s", Translated: "t"},
	}}
	mailer := &fakeMailer{}

	a := New(store, []Source{broken, healthy}, mailer)
	a.Now = fixedNow

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("one failing source must not fail the run: %v", err)
	}
	if !healthy.called {
		t.Error("later sources must still run after a failure")
	}
	if mailer.sends != 1 {
		t.Fatalf("digest sends: got %d, want 1", mailer.sends)
	}
	if !strings.Contains(mailer.body, "GDPR fine") {
		t.Errorf("digest missing healthy source's article:\n%s", mailer.body)
	}
}

func TestRunSkipsDispatchWhenNothingMatched(t *testing.T) {
	store := &fakeStore{initial: map[string]struct{}{"old": {}}}
	mailer := &fakeMailer{}

	a := New(store, []Source{&fakeSource{name: "quiet"}}, mailer)
	a.Now = fixedNow

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("empty run must succeed: %v", err)
	}
	if mailer.sends != 0 {
		t.Error("no delivery may be attempted for an empty run")
	}
	if store.saved == nil {
		t.Error("store must still be persisted on an empty run")
	}
	if _, ok := store.saved["old"]; !ok {
		t.Error("existing identifiers must survive an empty run")
	}
}

func TestRunPersistsStoreBeforeDispatch(t *testing.T) {
	var events []string
	store := &fakeStore{events: &events}
	mailer := &fakeMailer{events: &events, err: errors.New("smtp down")}
	src := &fakeSource{name: "s", records: []news.Article{
		{ID: "x", Source: "s", Title: "t", Summary: "sum", Translated: "tr"},
	}}

	a := New(store, []Source{src}, mailer)
	a.Now = fixedNow

	err := a.Run(context.Background())
	if err == nil {
		t.Fatal("delivery failure must fail the run")
	}
	if len(events) < 2 || events[0] != "save" || events[1] != "send" {
		t.Fatalf("store must be persisted before dispatch, got order %v", events)
	}
	if _, ok := store.saved["x"]; !ok {
		t.Error("matched identifier must be persisted even when delivery fails")
	}
}

func TestRunFailsFastOnStoreLoadError(t *testing.T) {
	src := &fakeSource{name: "s"}
	a := New(&fakeStore{loadErr: errors.New("permission denied")}, []Source{src}, &fakeMailer{})

	if err := a.Run(context.Background()); err == nil {
		t.Fatal("store load failure must be fatal")
	}
	if src.called {
		t.Error("sources must not run without the identifier store")
	}
}

func TestRunFailsOnStoreSaveError(t *testing.T) {
	mailer := &fakeMailer{}
	src := &fakeSource{name: "s", records: []news.Article{
		{ID: "x", Source: "s", Title: "t", Summary: "sum"},
	}}
	a := New(&fakeStore{saveErr: errors.New("disk full")}, []Source{src}, mailer)
	a.Now = fixedNow

	if err := a.Run(context.Background()); err == nil {
		t.Fatal("store save failure must be fatal")
	}
	if mailer.sends != 0 {
		t.Error("dispatch must not happen when the store cannot be persisted")
	}
}

func TestRunOrdersDigestByPublishedDescending(t *testing.T) {
	mailer := &fakeMailer{}
	src := &fakeSource{name: "s", records: []news.Article{
		{ID: "1", Source: "s", Title: "older", Summary: "a", Published: "2025-01-01"},
		{ID: "2", Source: "s", Title: "newer", Summary: "b", Published: "2025-06-01"},
	}}
	a := New(&fakeStore{}, []Source{src}, mailer)
	a.Now = fixedNow

	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	newer := strings.Index(mailer.body, "newer")
	older := strings.Index(mailer.body, "older")
	if newer < 0 || older < 0 || newer > older {
		t.Errorf("expected newer before older in digest:\n%s", mailer.body)
	}
	if mailer.subject != news.Subject {
		t.Errorf("subject: got %q", mailer.subject)
	}
}
