package state

import (
	"sync"

	"github.com/rs/zerolog"
)

// DarkModeStore persists the dark mode flag.
type DarkModeStore interface {
	DarkMode() bool
	SetDarkMode(enabled bool) error
}

// ThemeState holds the theme preference. DarkMode is meaningless until
// Loaded is true.
type ThemeState struct {
	Loaded   bool
	DarkMode bool
	Error    string
}

// Theme coordinates the persisted dark mode preference.
type Theme struct {
	store[ThemeState]

	prefs    DarkModeStore
	log      zerolog.Logger
	toggleMu sync.Mutex // serializes read-flip-write
}

// NewTheme builds a Theme over prefs.
func NewTheme(prefs DarkModeStore, log zerolog.Logger) *Theme {
	t := &Theme{prefs: prefs, log: log.With().Str("component", "theme").Logger()}
	t.init(ThemeState{}, func(s ThemeState) ThemeState { return s })
	return t
}

// Snapshot returns the current state.
func (t *Theme) Snapshot() ThemeState {
	return t.snapshot()
}

// Load reads the stored preference.
func (t *Theme) Load() {
	t.spawn(func() {
		dark := t.prefs.DarkMode()
		t.update(func(s *ThemeState) {
			s.Loaded = true
			s.DarkMode = dark
			s.Error = ""
		})
	})
}

// Toggle flips dark mode and persists it. On a write failure the previous
// value is kept and Error is set.
func (t *Theme) Toggle() {
	t.spawn(func() {
		t.toggleMu.Lock()
		defer t.toggleMu.Unlock()

		t.mu.RLock()
		current := t.state.DarkMode
		if !t.state.Loaded {
			current = t.prefs.DarkMode()
		}
		t.mu.RUnlock()

		next := !current
		if err := t.prefs.SetDarkMode(next); err != nil {
			t.log.Warn().Err(err).Msg("persist dark mode failed")
			t.update(func(s *ThemeState) {
				s.Loaded = true
				s.DarkMode = current
				s.Error = err.Error()
			})
			return
		}
		t.update(func(s *ThemeState) {
			s.Loaded = true
			s.DarkMode = next
			s.Error = ""
		})
	})
}
