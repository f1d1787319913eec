package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	c.Set("key", "value", time.Minute)
	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestCache_Expiration(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	c.Set("key", 42, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCache_IndependentInstances(t *testing.T) {
	a := NewCache(time.Minute, time.Minute)
	b := NewCache(time.Minute, time.Minute)

	a.Set("key", "a", time.Minute)
	_, found := b.Get("key")
	assert.False(t, found)
}

func TestGetTyped(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("int", 7, time.Minute)

	got, ok := GetTyped[int](c, "int")
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	_, ok = GetTyped[string](c, "int")
	assert.False(t, ok)
}
