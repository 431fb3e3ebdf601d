package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddDeduplicatesCaseInsensitively(t *testing.T) {
	r := New()

	assert.True(t, r.Add("Alice"))
	assert.False(t, r.Add("alice"))
	assert.False(t, r.Add("  ALICE  "))
	assert.Equal(t, 1, r.Len())

	// First-seen display form is preserved.
	display, ok := r.Resolve("aLiCe")
	assert.True(t, ok)
	assert.Equal(t, "Alice", display)
}

func TestAddRejectsEmpty(t *testing.T) {
	r := New()
	assert.False(t, r.Add(""))
	assert.False(t, r.Add("   "))
	assert.Equal(t, 0, r.Len())
}

func TestSnapshotPreservesJoinOrder(t *testing.T) {
	r := New()
	r.Add("charlie")
	r.Add("alice")
	r.Add("bob")

	assert.Equal(t, []string{"charlie", "alice", "bob"}, r.Snapshot())
	assert.Equal(t, "alice", r.At(1))
}

func TestSnapshotIsACopy(t *testing.T) {
	r := New()
	r.Add("alice")

	snap := r.Snapshot()
	snap[0] = "mallory"
	assert.Equal(t, "alice", r.At(0))
}

func TestResolveUnknown(t *testing.T) {
	r := New()
	r.Add("alice")

	_, ok := r.Resolve("bob")
	assert.False(t, ok)
}

func TestContainsAndClear(t *testing.T) {
	r := New()
	r.Add("alice")

	assert.True(t, r.Contains("ALICE"))
	r.Clear()
	assert.False(t, r.Contains("alice"))
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Snapshot())
}
