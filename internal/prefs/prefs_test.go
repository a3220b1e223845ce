package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	assert.Equal(t, Prefs{}, p)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "vitrine")
	require.NoError(t, os.MkdirAll(prefsDir, 0o755))
	body := "cart_id = \"gid://shopify/Cart/1\"\ndark_mode = true\ncustomer_token = \" tok \"\n"
	require.NoError(t, os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(body), 0o600))

	p := Load("")
	assert.Equal(t, "gid://shopify/Cart/1", p.CartID)
	assert.True(t, p.DarkMode)
	assert.Equal(t, "tok", p.CustomerToken)
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644))

	assert.Equal(t, Prefs{}, Load(path))
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	require.NoError(t, Save(path, Prefs{CartID: "c1", DarkMode: true}))

	loaded := Load(path)
	assert.Equal(t, "c1", loaded.CartID)
	assert.True(t, loaded.DarkMode)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_WritesThroughAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s := Open(path)

	require.NoError(t, s.SaveCartID(" cart-1 "))
	require.NoError(t, s.SetDarkMode(true))
	require.NoError(t, s.SaveCustomerToken("token-1"))

	reopened := Open(path)
	assert.Equal(t, "cart-1", reopened.CartID())
	assert.True(t, reopened.DarkMode())
	assert.Equal(t, "token-1", reopened.CustomerToken())

	require.NoError(t, reopened.ClearCustomerToken())
	require.NoError(t, reopened.ClearCartID())

	again := Open(path)
	assert.Empty(t, again.CustomerToken())
	assert.Empty(t, again.CartID())
	assert.True(t, again.DarkMode(), "clearing other keys keeps dark mode")
}

func TestStore_FailedWriteKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes every write fail.
	path := filepath.Join(dir, "prefs.toml")
	require.NoError(t, os.MkdirAll(path, 0o755))

	s := Open(path)
	err := s.SaveCartID("cart-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write prefs")
	assert.Empty(t, s.CartID())
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetDarkMode(i%2 == 0)
			_ = s.SaveCartID("cart")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "cart", s.CartID())
	assert.Equal(t, s.Snapshot(), Load(s.Path()))
}
