// Package config loads runtime settings from the environment and the
// source/keyword definitions from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deacon1876/autosensing/internal/mail"
	"github.com/deacon1876/autosensing/internal/news"
	"github.com/deacon1876/autosensing/internal/rss"
	"github.com/deacon1876/autosensing/internal/scrape"
)

// Config holds everything read from the environment. SMTP settings are not
// validated here: a missing mail configuration must only fail the run at
// dispatch time, after the identifier store has been persisted.
type Config struct {
	StorePath   string
	SourcesPath string
	TargetLang  string
	Schedule    string // cron expression; empty means run once and exit

	GeminiAPIKey string

	SMTP mail.Config
}

// Sources is the YAML-configured input set: feeds, scraped pages and the
// two keyword lists.
type Sources struct {
	Feeds    []rss.Feed       `yaml:"feeds"`
	Pages    []scrape.Page    `yaml:"pages"`
	Keywords news.KeywordSets `yaml:"keywords"`
}

func Load() (*Config, error) {
	cfg := &Config{
		StorePath:   getEnvOrDefault("PROCESSED_FILE", "processed_items.txt"),
		SourcesPath: getEnvOrDefault("SOURCES_CONFIG", "configs/sources.yaml"),
		TargetLang:  getEnvOrDefault("TARGET_LANG", "ko"),
		Schedule:    os.Getenv("SCHEDULE"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		SMTP: mail.Config{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvOrDefault("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			To:       splitRecipients(os.Getenv("EMAIL_TO")),
		},
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("PROCESSED_FILE must not be empty")
	}
	if c.TargetLang == "" {
		return fmt.Errorf("TARGET_LANG must not be empty")
	}
	return nil
}

// LoadSources reads the YAML source definitions. Unlike the identifier
// store, a missing sources file is a hard error: without it there is
// nothing to run against.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources config %s: %w", path, err)
	}
	defer f.Close()

	var src Sources
	if err := yaml.NewDecoder(f).Decode(&src); err != nil {
		return nil, fmt.Errorf("parse sources config %s: %w", path, err)
	}

	if len(src.Feeds) == 0 && len(src.Pages) == 0 {
		return nil, fmt.Errorf("sources config %s defines no feeds and no pages", path)
	}
	return &src, nil
}

func splitRecipients(raw string) []string {
	var to []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return to
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
