package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mcc", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("oauth.client_id", "client"))

	val, ok := store.Get("oauth.client_id")
	assert.True(t, ok)
	assert.Equal(t, "client", val)
	assert.Equal(t, "client", store.GetString("oauth.client_id"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("oauth.client_id", "client"))
	require.NoError(t, store.Set("api.version", "v18"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[oauth]")
	assert.Contains(t, content, "[api]")
	assert.NotContains(t, content, `"oauth.client_id"`)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("oauth.client_id", "client"))
	require.NoError(t, store.Set("oauth.scopes", []string{"a", "b"}))
	require.NoError(t, store.Set("storage.backend", "file"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "client", reloaded.GetString("oauth.client_id"))
	assert.Equal(t, []string{"a", "b"}, reloaded.GetStringSlice("oauth.scopes"))
	assert.Equal(t, "file", reloaded.GetString("storage.backend"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[oauth]
client_id = "hand"
scopes = ["x", 1, "y"]

[customer]
currency_code = "EUR"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "hand", store.GetString("oauth.client_id"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("oauth.scopes"))
	assert.Equal(t, "EUR", store.GetString("customer.currency_code"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Set_WriteFileErrorRestoresValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.version", "v18"))

	// Replace the file with a directory so writes fail
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("api.version", "v19"))
	assert.Equal(t, "v18", store.GetString("api.version"))

	assert.Error(t, store.Set("api.base_url", "http://x"))
	_, ok := store.Get("api.base_url")
	assert.False(t, ok)
}

func TestConfigStore_Set_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api", "flat"))

	assert.Error(t, store.Set("api.version", "v18"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("customer.time_zone", "Europe/London")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("customer.time_zone")
		}()
	}
	wg.Wait()

	assert.Equal(t, "Europe/London", store.GetString("customer.time_zone"))
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"oauth.client_id": "c",
		"oauth.scopes":    []string{"s"},
		"top":             1,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"oauth": map[string]any{"client_id": "c", "scopes": []string{"s"}},
		"top":   1,
	}, nested)
	assert.Equal(t, map[string]any{
		"oauth.client_id": "c",
		"oauth.scopes":    []string{"s"},
		"top":             1,
	}, flattenMap(nested, ""))
}
