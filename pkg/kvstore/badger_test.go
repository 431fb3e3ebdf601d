package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := payload{Name: "alice", Count: 3}
	require.NoError(t, store.SetAny("k1", in))

	var out payload
	found, err := store.GetAny("k1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	var out payload
	found, err := store.GetAny("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetAny("k1", payload{Name: "x"}))
	require.NoError(t, store.Delete("k1"))

	var out payload
	found, err := store.GetAny("k1", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete("k1"))
}

func TestKeyAndValueValidation(t *testing.T) {
	store := newTestStore(t)

	assert.ErrorIs(t, store.SetAny("", payload{}), ErrKeyEmpty)
	assert.ErrorIs(t, store.SetAny("k", nil), ErrNilValue)

	_, err := store.GetAny("", &payload{})
	assert.ErrorIs(t, err, ErrKeyEmpty)
	assert.ErrorIs(t, store.Delete(""), ErrKeyEmpty)
}

func TestPrefixIsolation(t *testing.T) {
	dir := t.TempDir()
	a, err := NewBadgerStore(dir, "a")
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.SetAny("k", payload{Name: "in-a"}))

	// Same key under a different prefix resolves independently.
	b := &BadgerStore{db: a.db, prefix: "b"}
	var out payload
	found, err := b.GetAny("k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
