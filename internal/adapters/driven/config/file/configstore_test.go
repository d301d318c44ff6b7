package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store in a temp dir with no environment overrides.
func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.lookupEnv = func(string) (string, bool) { return "", false }
	require.NoError(t, store.Load())
	return store
}

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
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".skycast", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api\nkey = "), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("forecast.default_city", "Rewari"))
	require.NoError(t, store.Set("forecast.days", int64(7)))
	require.NoError(t, store.Set("search.max_candidates", 5))
	require.NoError(t, store.Set("api.requests_per_second", 0.5))
	require.NoError(t, store.Set("forecast.retain_on_failure", true))

	assert.Equal(t, "Rewari", store.GetString("forecast.default_city"))
	assert.Equal(t, 7, store.GetInt("forecast.days"))
	assert.Equal(t, 5, store.GetInt("search.max_candidates"))
	assert.InDelta(t, 0.5, store.GetFloat("api.requests_per_second"), 1e-9)
	assert.InDelta(t, 7.0, store.GetFloat("forecast.days"), 1e-9)
	assert.True(t, store.GetBool("forecast.retain_on_failure"))

	// Wrong types and missing keys return zero values.
	assert.Empty(t, store.GetString("forecast.days"))
	assert.Zero(t, store.GetInt("forecast.default_city"))
	assert.Zero(t, store.GetFloat("forecast.default_city"))
	assert.False(t, store.GetBool("forecast.days"))
	assert.Empty(t, store.GetString("missing"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("api.key", "secret"))
	require.NoError(t, store.Set("forecast.days", 5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[forecast]")
	assert.NotContains(t, string(raw), `"api.key"`)
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	store.lookupEnv = func(string) (string, bool) { return "", false }

	require.NoError(t, store.Set("forecast.default_city", "Lisbon"))
	require.NoError(t, store.Set("forecast.days", 3))
	require.NoError(t, store.Set("api.requests_per_second", 1.5))
	require.NoError(t, store.Set("forecast.retain_on_failure", false))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", reloaded.GetString("forecast.default_city"))
	assert.Equal(t, 3, reloaded.GetInt("forecast.days"))
	assert.InDelta(t, 1.5, reloaded.GetFloat("api.requests_per_second"), 1e-9)
	val, ok := reloaded.Get("forecast.retain_on_failure")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[api]
key = "abc"
timeout_seconds = 15

[search]
debounce_ms = 1500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 15, store.GetInt("api.timeout_seconds"))
	assert.Equal(t, 1500, store.GetInt("search.debounce_ms"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	_, ok := store.Get("api.key")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store := newTestStore(t)

	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	env := map[string]string{
		"WEATHER_API_KEY":      "from-weather",
		"SKYCAST_DEFAULT_CITY": "  Oslo ",
	}
	store.lookupEnv = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	require.NoError(t, store.Set("api.key", "from-file"))
	require.NoError(t, store.Load())

	assert.Equal(t, "from-weather", store.GetString("api.key"))
	assert.Equal(t, "Oslo", store.GetString("forecast.default_city"))
	assert.True(t, store.Overridden("api.key"))
	assert.False(t, store.Overridden("search.language"))

	// SKYCAST_API_KEY wins over WEATHER_API_KEY.
	env["SKYCAST_API_KEY"] = "from-skycast"
	require.NoError(t, store.Load())
	assert.Equal(t, "from-skycast", store.GetString("api.key"))

	// Overrides are never written to disk.
	require.NoError(t, store.Save())
	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "from-file")
	assert.NotContains(t, string(raw), "from-skycast")
	assert.NotContains(t, string(raw), "Oslo")
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("forecast.days", n%10+1)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("forecast.days")
		}()
	}
	wg.Wait()

	days := store.GetInt("forecast.days")
	assert.GreaterOrEqual(t, days, 1)
	assert.LessOrEqual(t, days, 10)
}

func TestNestMap_RoundTrip(t *testing.T) {
	flat := map[string]any{
		"api.key":       "k",
		"api.base_url":  "https://example.com",
		"forecast.days": int64(7),
		"top":           true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"key": "k", "base_url": "https://example.com"}, nested["api"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, flat, flattenMap(nested, ""))
}
