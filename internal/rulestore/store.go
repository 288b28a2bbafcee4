// Package rulestore persists the lender rule set to a human-readable YAML
// file. Loading happens once at session start; saving only on explicit admin
// action. The file is a mapping keyed by lender name, in insertion order.
package rulestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dealdesk/dealpilot/internal/lender"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store reads and writes a rule set at a fixed file path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore constructs a store for the given path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the rule set from disk. A missing file is not an error: the
// built-in default lenders are returned so a fresh install starts usable.
// Malformed content is surfaced to the caller; the core assumes a
// well-formed rule set once loaded.
func (s *Store) Load() (*lender.RuleSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no rule file found, starting with built-in defaults",
				zap.String("op", "rulestore.Load"),
				zap.String("path", s.path),
			)
			return lender.DefaultRuleSet(), nil
		}
		return nil, fmt.Errorf("failed to read rule file %s: %w", s.path, err)
	}

	rs := lender.NewRuleSet()
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", s.path, err)
	}

	s.logger.Info("loaded lender rules",
		zap.String("op", "rulestore.Load"),
		zap.String("path", s.path),
		zap.Int("lenders", rs.Len()),
	)
	return rs, nil
}

// Save writes the rule set to disk, creating the parent directory if needed.
func (s *Store) Save(rs *lender.RuleSet) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to encode rule set: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create rule directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rule file %s: %w", s.path, err)
	}

	s.logger.Info("saved lender rules",
		zap.String("op", "rulestore.Save"),
		zap.String("path", s.path),
		zap.Int("lenders", rs.Len()),
	)
	return nil
}
