package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.json")
	store := NewPrefsStore(path)

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefs(), p)

	want := Prefs{
		Theme:  ThemeNeon,
		Layout: LayoutCompact,
		Filter: FilterCompleted,
		Sort:   SortTitle,
		Draft:  Draft{Title: "half written", Description: "notes"},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, path, store.Path())
}

func TestPrefsStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p, err := NewPrefsStore(path).Load()
	require.Error(t, err)
	assert.Equal(t, DefaultPrefs(), p)
}

func TestPrefsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"solarized","layout":"huge","filter":"x","sort":"y","draft":{"title":"kept"}}`), 0o644))

	p, err := NewPrefsStore(path).Load()
	require.NoError(t, err)

	want := DefaultPrefs()
	want.Draft = Draft{Title: "kept"}
	assert.Equal(t, want, p)
}

func TestDraftIsEmpty(t *testing.T) {
	assert.True(t, Draft{}.IsEmpty())
	assert.False(t, Draft{Description: "x"}.IsEmpty())
}
