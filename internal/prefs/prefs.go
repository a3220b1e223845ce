// Package prefs handles vitrine's small key-value preference file.
// Preferences are stored in ~/.config/vitrine/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the persisted values.
type Prefs struct {
	CartID        string `toml:"cart_id,omitempty"`
	DarkMode      bool   `toml:"dark_mode"`
	CustomerToken string `toml:"customer_token,omitempty"`
}

const defaultPrefsPath = "~/.config/vitrine/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Prefs{}
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Prefs{}
	}
	p.CartID = strings.TrimSpace(p.CartID)
	p.CustomerToken = strings.TrimSpace(p.CustomerToken)
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	// The customer token is a credential.
	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store is a concurrency-safe view over a prefs file. Every mutation is
// written through to disk before it returns.
type Store struct {
	mu    sync.RWMutex
	path  string
	prefs Prefs
}

// Open loads the file at path into a Store. An empty path uses DefaultPath.
func Open(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return &Store{path: path, prefs: Load(path)}
}

// Path returns the backing file path as given to Open.
func (s *Store) Path() string {
	return s.path
}

// CartID returns the cached cart id, or "" when none is cached.
func (s *Store) CartID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.CartID
}

// SaveCartID caches id for reuse across launches.
func (s *Store) SaveCartID(id string) error {
	return s.update(func(p *Prefs) { p.CartID = strings.TrimSpace(id) })
}

// ClearCartID forgets the cached cart id.
func (s *Store) ClearCartID() error {
	return s.update(func(p *Prefs) { p.CartID = "" })
}

// DarkMode reports the persisted theme flag.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.DarkMode
}

// SetDarkMode persists the theme flag.
func (s *Store) SetDarkMode(enabled bool) error {
	return s.update(func(p *Prefs) { p.DarkMode = enabled })
}

// CustomerToken returns the customer access token, or "".
func (s *Store) CustomerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.CustomerToken
}

// SaveCustomerToken overwrites the customer access token.
func (s *Store) SaveCustomerToken(token string) error {
	return s.update(func(p *Prefs) { p.CustomerToken = strings.TrimSpace(token) })
}

// ClearCustomerToken removes the customer access token.
func (s *Store) ClearCustomerToken() error {
	return s.update(func(p *Prefs) { p.CustomerToken = "" })
}

// Snapshot returns a copy of the current values.
func (s *Store) Snapshot() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *Store) update(mutate func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	mutate(&next)
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

var errEmptyPath = errors.New("path is empty")

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errEmptyPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
