package localstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/platform/localstore"
)

func TestBoltSetGetKeysClear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "local.bolt")
	store, err := localstore.Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("zenith-theme", "light"))
	require.NoError(t, store.SetMany(map[string]string{"zenith-accent": "blue", "zenith-tasks": "[]"}))

	v, ok, err := store.Get("zenith-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	_, ok, err = store.Get("zenith-goals")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"zenith-accent", "zenith-tasks", "zenith-theme"}, keys)

	require.NoError(t, store.Delete("zenith-tasks"))
	require.NoError(t, store.Clear())
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
	require.NoError(t, store.Close())

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Set("zenith-theme", "dark"))
	v, _, err = reopened.Get("zenith-theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}
