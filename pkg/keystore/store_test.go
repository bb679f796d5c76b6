package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	doc := validDocument(t)

	path, err := store.Save(doc, false)
	require.NoError(t, err)
	require.FileExists(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load("w1")
	require.NoError(t, err)
	require.Equal(t, doc, loaded)

	// Extension is optional on load.
	loaded, err = store.Load("w1.json")
	require.NoError(t, err)
	require.Equal(t, doc, loaded)
}

func TestStoreAliasCollision(t *testing.T) {
	store := NewStore(t.TempDir())
	doc := validDocument(t)

	_, err := store.Save(doc, false)
	require.NoError(t, err)

	_, err = store.Save(doc, false)
	require.ErrorIs(t, err, ErrAliasCollision)

	// Force overwrites.
	_, err = store.Save(doc, true)
	require.NoError(t, err)
}

func TestStoreInvalidAlias(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, alias := range []string{"", "../escape", "a/b", `a\b`} {
		doc := validDocument(t)
		doc.Metadata.Alias = alias
		_, err := store.Save(doc, false)
		require.ErrorIs(t, err, ErrInvalidAlias, "alias %q", alias)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Load("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Empty (and even absent) directory lists cleanly.
	items, err := NewStore(filepath.Join(dir, "missing")).List()
	require.NoError(t, err)
	require.Empty(t, items)

	first := validDocument(t)
	_, err = store.Save(first, false)
	require.NoError(t, err)

	second := validDocument(t)
	second.Metadata.Alias = "w2"
	second.Metadata.WalletType = TypeImported
	_, err = store.Save(second, false)
	require.NoError(t, err)

	// A stray malformed file is skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o600))

	items, err = store.List()
	require.NoError(t, err)
	require.Len(t, items, 2)

	aliases := map[string]string{}
	for _, md := range items {
		aliases[md.Alias] = md.WalletType
	}
	require.Equal(t, TypeHDWallet, aliases["w1"])
	require.Equal(t, TypeImported, aliases["w2"])
}

func TestStoreNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	_, err := store.Save(validDocument(t), false)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "w1.json", entries[0].Name())
}
