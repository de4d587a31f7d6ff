// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgen/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("NeRF_SLAM.json", `{"title":"NeRF_SLAM"}`))

	content, err := s.Get("NeRF_SLAM.json")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"NeRF_SLAM"}`, content)
}

func TestStoreUpsert(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("doc.json", "v1"))
	require.NoError(t, s.Put("doc.json", "v2"))

	content, err := s.Get("doc.json")
	require.NoError(t, err)
	assert.Equal(t, "v2", content)
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nope.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Put("persisted.json", "{}"))
	require.NoError(t, s.Close())

	s2, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	content, err := s2.Get("persisted.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", content)
}
