// Package file provides a Token Store kept in a single JSON document on disk.
//
// The document is a flat object of string values, e.g.
//
//	{"developerToken": "...", "googleAccounts": "[...]"}
//
// Writes replace the file atomically. Watch reports edits made by other
// processes so a running TUI can pick them up.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

// Ensure TokenStore implements the interface.
var _ driven.WatchableTokenStore = (*TokenStore)(nil)

// TokenStore implements driven.WatchableTokenStore on a JSON file.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

// NewTokenStore creates a token store at the given path.
// If path is empty, defaults to ~/.mcc/tokens.json.
func NewTokenStore(path string) (*TokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".mcc", "tokens.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating token directory: %w", err)
	}
	return &TokenStore{path: path}, nil
}

// Path returns the token file path.
func (s *TokenStore) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *TokenStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	res := gjson.Get(doc, escapeKey(key))
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

// Set stores value under key.
func (s *TokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	updated, err := sjson.Set(doc, escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return s.write(updated)
}

// Remove deletes key.
func (s *TokenStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if !gjson.Get(doc, escapeKey(key)).Exists() {
		return nil
	}
	updated, err := sjson.Delete(doc, escapeKey(key))
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return s.write(updated)
}

// Watch calls onChange after the token file is written, created, removed
// or renamed, until ctx is cancelled.
func (s *TokenStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	// Watch the directory: atomic writes replace the file's inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					logger.Debug("token file changed: %s", event.Op)
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("token file watcher: %v", err)
			}
		}
	}()
	return nil
}

// read returns the document, or "{}" when the file does not exist.
func (s *TokenStore) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "{}", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	doc := strings.TrimSpace(string(data))
	if doc == "" {
		return "{}", nil
	}
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("reading token file: %s is not valid JSON", s.path)
	}
	return doc, nil
}

// write replaces the file atomically with owner-only permissions.
func (s *TokenStore) write(doc string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*.json")
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// escapeKey escapes gjson path syntax so a key is matched literally.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
