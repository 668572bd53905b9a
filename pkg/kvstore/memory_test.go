package kvstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Put("products", fixture{Name: "dress", Count: 3}))

	var got fixture
	assert.True(t, m.Get("products", &got))
	assert.Equal(t, "dress", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryGetMiss(t *testing.T) {
	m := NewMemory()

	var got fixture
	assert.False(t, m.Get("nope", &got))
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Put("cart", fixture{Name: "x"}))
	require.NoError(t, m.Delete("cart"))

	var got fixture
	assert.False(t, m.Get("cart", &got))

	// Deleting an absent key is fine.
	assert.NoError(t, m.Delete("cart"))
}

func TestMemoryTakeIsOneShot(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.PutTTL("slot", fixture{Name: "buy-now"}, time.Minute))

	var first fixture
	assert.True(t, m.Take("slot", &first))
	assert.Equal(t, "buy-now", first.Name)

	var second fixture
	assert.False(t, m.Take("slot", &second), "slot must be consumed on first read")
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.PutTTL("slot", fixture{Name: "stale"}, -time.Second))

	var got fixture
	assert.False(t, m.Take("slot", &got))
}

func TestMemorySweep(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Put("durable", fixture{Name: "keep"}))
	require.NoError(t, m.PutTTL("stale", fixture{Name: "gone"}, -time.Second))
	require.NoError(t, m.PutTTL("fresh", fixture{Name: "keep"}, time.Minute))

	assert.Equal(t, 1, m.Sweep())

	var got fixture
	assert.False(t, m.Get("stale", &got))
	assert.True(t, m.Get("durable", &got))
	assert.True(t, m.Get("fresh", &got))
}
