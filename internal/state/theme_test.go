package state

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/prefs"
)

type brokenPrefs struct {
	mu   sync.Mutex
	dark bool
}

func (b *brokenPrefs) DarkMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dark
}

func (b *brokenPrefs) SetDarkMode(bool) error {
	return errors.New("read-only file system")
}

func TestThemeLoadAndToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	p := prefs.Open(path)
	theme := NewTheme(p, zerolog.Nop())

	assert.False(t, theme.Snapshot().Loaded)
	theme.Load()
	theme.Wait()
	snap := theme.Snapshot()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.DarkMode)

	theme.Toggle()
	theme.Wait()
	assert.True(t, theme.Snapshot().DarkMode)
	assert.True(t, prefs.Load(path).DarkMode, "toggle persists")

	theme.Toggle()
	theme.Toggle()
	theme.Toggle()
	theme.Wait()
	assert.False(t, theme.Snapshot().DarkMode, "toggles serialize")
	assert.False(t, p.DarkMode())
}

func TestThemeToggleBeforeLoadUsesStoredValue(t *testing.T) {
	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, p.SetDarkMode(true))

	theme := NewTheme(p, zerolog.Nop())
	theme.Toggle()
	theme.Wait()
	snap := theme.Snapshot()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.DarkMode)
}

func TestThemeToggleWriteFailureKeepsValue(t *testing.T) {
	theme := NewTheme(&brokenPrefs{dark: true}, zerolog.Nop())
	theme.Load()
	theme.Wait()

	theme.Toggle()
	theme.Wait()
	snap := theme.Snapshot()
	assert.True(t, snap.DarkMode)
	assert.Equal(t, "read-only file system", snap.Error)
}
