package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("ai.provider", "openai"))

	val, ok := store.Get("ai.provider")
	require.True(t, ok)
	assert.Equal(t, "openai", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("name", "value"))
	require.NoError(t, store.Set("number", 42))

	assert.Equal(t, "value", store.GetString("name"))
	assert.Empty(t, store.GetString("number"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("int", 5))
	require.NoError(t, store.Set("int64", int64(7)))
	require.NoError(t, store.Set("float", 9.0))
	require.NoError(t, store.Set("string", "nope"))

	assert.Equal(t, 5, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 9, store.GetInt("float"))
	assert.Zero(t, store.GetInt("string"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("float64", 0.75))
	require.NoError(t, store.Set("float32", float32(0.5)))
	require.NoError(t, store.Set("int", 2))
	require.NoError(t, store.Set("string", "nope"))

	assert.InDelta(t, 0.75, store.GetFloat("float64"), 1e-9)
	assert.InDelta(t, 0.5, store.GetFloat("float32"), 1e-6)
	assert.InDelta(t, 2.0, store.GetFloat("int"), 1e-9)
	assert.Zero(t, store.GetFloat("string"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("on", true))
	require.NoError(t, store.Set("off", false))

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("off"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("strings", []string{"a", "b"}))
	require.NoError(t, store.Set("anys", []any{"c", 1, "d"}))

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strings"))
	assert.Equal(t, []string{"c", "d"}, store.GetStringSlice("anys"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadNoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
