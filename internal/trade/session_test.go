package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreGetCreatesIdle(t *testing.T) {
	store := NewSessionStore()

	sess := store.Get(42)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, PhaseIdle, sess.Phase)
	assert.Empty(t, sess.PhotoRefs)

	// Same session on repeated Get.
	sess.PhotoRefs = append(sess.PhotoRefs, "a")
	assert.Len(t, store.Get(42).PhotoRefs, 1)
}

func TestSessionStoreReset(t *testing.T) {
	store := NewSessionStore()

	sess := store.Get(1)
	sess.Phase = PhaseAwaitingTradeInfo
	sess.PhotoRefs = []string{"a", "b"}
	sess.Images = [][]byte{{1}, {2}}

	fresh := store.Reset(1)
	assert.Equal(t, PhaseIdle, fresh.Phase)
	assert.Empty(t, fresh.PhotoRefs)
	assert.Empty(t, fresh.Images)
	assert.Same(t, fresh, store.Get(1))
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore()

	store.Get(1).Phase = PhaseCollectingScreenshots
	store.Clear(1)
	assert.Equal(t, PhaseIdle, store.Get(1).Phase)

	// Clearing an unknown user is a no-op.
	store.Clear(99)
}

func TestSessionStoreIsolatesUsers(t *testing.T) {
	store := NewSessionStore()

	store.Get(1).PhotoRefs = []string{"a"}
	store.Get(2).PhotoRefs = []string{"b", "c"}

	store.Clear(1)
	assert.Len(t, store.Get(2).PhotoRefs, 2)
}
