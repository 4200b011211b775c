package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualParamsProduceEqualKeys(t *testing.T) {
	type params struct {
		Org   string `json:"org"`
		Skip  int    `json:"skip"`
		Limit int    `json:"limit"`
	}
	a := NewKey("clients", params{Org: "org-1", Skip: 0, Limit: 50})
	b := NewKey("clients", params{Org: "org-1", Skip: 0, Limit: 50})
	assert.Equal(t, a, b)
}

func TestMapParamsAreOrderIndependent(t *testing.T) {
	a := NewKey("plans", map[string]string{"a": "1", "b": "2"})
	b := NewKey("plans", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
}

func TestResourceKeyMatchesEveryVariant(t *testing.T) {
	wide := ResourceKey("clients")
	narrow := NewKey("clients", map[string]int{"skip": 50})

	assert.True(t, wide.matches(narrow))
	assert.True(t, wide.matches(ResourceKey("clients")))
	assert.False(t, narrow.matches(wide))
	assert.False(t, wide.matches(ResourceKey("plans")))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "clients", ResourceKey("clients").String())
	assert.Equal(t, `clients?{"skip":50}`, NewKey("clients", map[string]int{"skip": 50}).String())
}
