package json_test

import (
	jsonstore "codeberg.org/miketth/langswitcher/pkg/langstore/json"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *jsonstore.LangStore {
	store, err := jsonstore.NewLangStore(filepath.Join(t.TempDir(), "LangSwitcher", "lang_config.json"))
	require.NoError(t, err)
	return store
}

func TestLoadMissingFile(t *testing.T) {
	store := newStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("  \n"), 0644))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadCorruptFile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"Code.exe": `), 0644))

	cfg, err := store.Load()
	assert.ErrorIs(t, err, langswitch.ErrCorrupt)
	assert.Empty(t, cfg)
	assert.NotNil(t, cfg)
}

func TestLoadNullDocument(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("null\n"), 0644))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg)

	require.NotPanics(t, func() { store.Set("Code.exe", "fa") })
	require.NoError(t, store.Flush())

	cfg, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, langswitch.Config{"Code.exe": "fa"}, cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	store := newStore(t)

	want := langswitch.Config{"Code.exe": "en", "telegram.exe": "fa"}
	require.NoError(t, store.Save(want))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, cfg)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Code.exe\": \"en\",\n  \"telegram.exe\": \"fa\"\n}\n", string(data))
}

func TestSaveIsolatesCaller(t *testing.T) {
	store := newStore(t)

	cfg := langswitch.Config{"Code.exe": "en"}
	require.NoError(t, store.Save(cfg))
	cfg["Code.exe"] = "fa"

	v, ok := store.Get("code.exe")
	assert.True(t, ok)
	assert.Equal(t, "en", v)
}

func TestSetDeleteFlush(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(langswitch.Config{"Code.exe": "en", "notepad.exe": "fa"}))

	store.Set("CODE.EXE", "fa")
	assert.True(t, store.Delete("Notepad.exe"))
	assert.False(t, store.Delete("missing.exe"))

	reread, err := jsonstore.NewLangStore(store.Path())
	require.NoError(t, err)
	cfg, err := reread.Load()
	require.NoError(t, err)
	assert.Equal(t, langswitch.Config{"Code.exe": "en", "notepad.exe": "fa"}, cfg, "nothing written before Flush")

	require.NoError(t, store.Flush())

	cfg, err = reread.Load()
	require.NoError(t, err)
	assert.Equal(t, langswitch.Config{"CODE.EXE": "fa"}, cfg)
}

func TestCloseFlushes(t *testing.T) {
	store := newStore(t)
	store.Set("Code.exe", "fa")
	require.NoError(t, store.Close())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Code.exe": "fa"`)
}
