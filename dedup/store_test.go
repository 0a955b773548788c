package dedup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadedIdsMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Empty(t, store.LoadedIds("twitter"))
}

func TestRecordThenFreshLoad(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	require.NoError(t, store.Record("twitter", "b:123"))

	// a fresh store must see the appended key
	fresh := NewStore(dir)
	assert.True(t, fresh.LoadedIds("twitter").Contains("b:123"))
	assert.False(t, fresh.LoadedIds("twitter").Contains("b:124"))
}

func TestRecordIsPerPlatform(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Record("twitter", "b:1"))

	assert.True(t, store.LoadedIds("twitter").Contains("b:1"))
	assert.False(t, store.LoadedIds("bluesky").Contains("b:1"))
}

func TestRecordAppends(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Record("bluesky", "b:1"))
	require.NoError(t, store.Record("bluesky", "a:2"))

	set := store.LoadedIds("bluesky")
	assert.Len(t, set, 2)
	assert.True(t, set.Contains("b:1"))
	assert.True(t, set.Contains("a:2"))

	// the file stays newline-delimited and human readable
	data, err := os.ReadFile(filepath.Join(dir, "published_bluesky.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b:1\na:2\n", string(data))
}
