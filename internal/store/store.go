// Package store persists the set of already-processed article identifiers
// between runs. The backing file is newline-delimited UTF-8, one identifier
// per line, written in ascending order so diffs stay reproducible.
package store

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Store is a file-backed identifier set. It holds no in-memory state; the
// orchestrator owns the loaded set for the duration of one run.
type Store struct {
	path string
}

// New returns a store backed by the file at path. The file does not need
// to exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted identifiers. A missing file is a first run, not
// an error, and yields an empty set.
func (s *Store) Load() (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, fmt.Errorf("read identifier store %s: %w", s.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read identifier store %s: %w", s.path, err)
	}
	return ids, nil
}

// Save overwrites the backing file with all identifiers, sorted ascending.
// An empty set produces an empty file.
func (s *Store) Save(ids map[string]struct{}) error {
	lines := make([]string, 0, len(ids))
	for id := range ids {
		lines = append(lines, id)
	}
	sort.Strings(lines)

	var b strings.Builder
	for _, id := range lines {
		b.WriteString(id)
		b.WriteString("\n")
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write identifier store %s: %w", s.path, err)
	}
	return nil
}
