package metrics

import (
	"sync"
	"time"
)

// Metrics accumulates run statistics for the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	EntriesProcessed   int64
	ArticlesMatched    int64
	SourceErrors       int64
	FailedTranslations int64
	DigestsSent        int64

	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddEntriesProcessed(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesProcessed += n
}

func (m *Metrics) AddArticlesMatched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesMatched += n
}

func (m *Metrics) IncrementSourceErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceErrors++
}

func (m *Metrics) IncrementFailedTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedTranslations++
}

func (m *Metrics) IncrementDigestsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsSent++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_processed":   m.EntriesProcessed,
		"articles_matched":    m.ArticlesMatched,
		"source_errors":       m.SourceErrors,
		"failed_translations": m.FailedTranslations,
		"digests_sent":        m.DigestsSent,
		"last_run_time":       m.LastRunTime.Format(time.RFC3339),
		"last_error_time":     m.LastErrorTime.Format(time.RFC3339),
		"last_error":          m.LastError,
		"is_healthy":          m.IsHealthy,
	}
}
