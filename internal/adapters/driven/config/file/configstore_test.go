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

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".lexqa"), dir)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)
	require.NoError(t, err)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "google/gemini-flash-1.5"))
	require.NoError(t, store.Set("chunker.chunk_size", 3000))
	require.NoError(t, store.Set("llm.requests_per_second", 2.5))
	require.NoError(t, store.Set("chunker.parallel", true))
	require.NoError(t, store.Set("llm.fallback_models", []string{"a", "b"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("llm.model"), "google/gemini-flash-1.5"},
		{"int", store.GetInt("chunker.chunk_size"), 3000},
		{"float", store.GetFloat("llm.requests_per_second"), 2.5},
		{"int as float", store.GetFloat("chunker.chunk_size"), 3000.0},
		{"bool", store.GetBool("chunker.parallel"), true},
		{"slice", store.GetStringSlice("llm.fallback_models"), []string{"a", "b"}},
		{"missing string", store.GetString("nope"), ""},
		{"missing int", store.GetInt("nope"), 0},
		{"missing float", store.GetFloat("nope"), 0.0},
		{"missing bool", store.GetBool("nope"), false},
		{"wrong type", store.GetInt("llm.model"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_SetEmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("", "x"))
}

func TestConfigStore_SetDoesNotWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "m"))

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("llm.timeout_seconds", 45))
	require.NoError(t, store.Set("llm.requests_per_second", 1.5))
	require.NoError(t, store.Set("llm.fallback_models", []string{"x/one", "y/two"}))
	require.NoError(t, store.Set("chunker.parallel", true))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "openai", reloaded.GetString("llm.provider"))
	assert.Equal(t, 45, reloaded.GetInt("llm.timeout_seconds"))
	assert.InDelta(t, 1.5, reloaded.GetFloat("llm.requests_per_second"), 0.0001)
	assert.Equal(t, []string{"x/one", "y/two"}, reloaded.GetStringSlice("llm.fallback_models"))
	assert.True(t, reloaded.GetBool("chunker.parallel"))
}

func TestConfigStore_Save_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "m"))
	require.NoError(t, store.Set("cache.retention_hours", 24))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[llm]")
	assert.Contains(t, content, "[cache]")
	assert.NotContains(t, content, `"llm.model"`)
}

func TestConfigStore_Save_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm", "flat"))
	require.NoError(t, store.Set("llm.model", "nested"))

	assert.Error(t, store.Save())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Delete(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	require.NoError(t, store.Delete("llm.api_key"))
	require.NoError(t, store.Delete("never.set"))

	_, ok := store.Get("llm.api_key")
	assert.False(t, ok)
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[llm]
provider = "ollama"
model = "llama3.2"

[chunker]
chunk_size = 2000
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
	assert.Equal(t, 2000, store.GetInt("chunker.chunk_size"))
}

func TestConfigStore_Load_CommentOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# nothing\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[ not toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("query.top_k", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("query.top_k")
		}()
	}
	wg.Wait()

	v := store.GetInt("query.top_k")
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 20)
}

func TestUnflattenMap(t *testing.T) {
	tree, err := unflattenMap(map[string]any{
		"llm.model":          "m",
		"llm.provider":       "openai",
		"chunker.chunk_size": 10,
		"top":                true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"llm":     map[string]any{"model": "m", "provider": "openai"},
		"chunker": map[string]any{"chunk_size": 10},
		"top":     true,
	}, tree)
	assert.Equal(t, map[string]any{
		"llm.model":          "m",
		"llm.provider":       "openai",
		"chunker.chunk_size": 10,
		"top":                true,
	}, flattenMap(tree, ""))
}
