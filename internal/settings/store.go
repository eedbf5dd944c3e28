// Package settings persists the user's UI preferences in a flat JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	KeyDefaultRevenue = "default_revenue"
	KeyDefaultExpense = "default_expense"

	// UnsetAccount marks a default account the user wants derived from history.
	UnsetAccount = "-1"
)

// Store is a flat key/value JSON document. Every Save rewrites the whole file.
type Store struct {
	path   string
	logger *zap.Logger

	// writeMu serializes reads and writes of the file.
	writeMu sync.Mutex

	mu      sync.RWMutex
	configs map[string]any
}

func NewStore(path string, logger *zap.Logger) *Store {
	s := &Store{path: path, logger: logger, configs: map[string]any{}}
	s.Load()
	return s
}

// Load re-reads the file. A missing or malformed file yields an empty map.
func (s *Store) Load() map[string]any {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.load()
}

func (s *Store) load() map[string]any {
	configs := map[string]any{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		s.logger.Warn("Failed to read user settings", zap.String("path", s.path), zap.Error(err))
	default:
		if err := json.Unmarshal(data, &configs); err != nil {
			s.logger.Warn("User settings file is not valid JSON, starting empty", zap.String("path", s.path), zap.Error(err))
			configs = map[string]any{}
		}
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.configs[key]
	return v, ok
}

// GetString returns the value under key rendered as a string, or "".
func (s *Store) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return fmt.Sprintf("%g", typed)
	default:
		return fmt.Sprint(typed)
	}
}

func (s *Store) Update(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key] = value
}

// Snapshot returns a copy of all settings.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.configs))
	for k, v := range s.configs {
		out[k] = v
	}
	return out
}

// Merge re-reads the file, applies values on top and writes it back as one step.
func (s *Store) Merge(values map[string]any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.load()
	s.mu.Lock()
	for k, v := range values {
		s.configs[k] = v
	}
	s.mu.Unlock()
	return s.save()
}

// Save writes the settings through a temp file and rename.
func (s *Store) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.configs, "", "    ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".user_configs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
