package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	cases := []struct {
		ref         string
		defaultKind Kind
		expected    Key
	}{
		{"minecraft:block/cube_all", KindItem, Key{KindBlock, "cube_all"}},
		{"block/stone", KindItem, Key{KindBlock, "stone"}},
		{"item/stick", KindBlock, Key{KindItem, "stick"}},
		{"blocks/stone", KindItem, Key{KindBlock, "stone"}},
		{"items/stick", KindBlock, Key{KindItem, "stick"}},
		{"builtin/generated", KindItem, Key{KindItem, "builtin/generated"}},
	}

	for _, test := range cases {
		assert.Equal(t, test.expected, ParseReference(test.ref, test.defaultKind))
	}
}

func TestStoreDuplicates(t *testing.T) {
	store := NewStore()

	err := store.Load(KindBlock, "stone", []byte(`{"textures":{"all":"block/stone"}}`))
	require.NoError(t, err)

	// Last write wins.
	err = store.Load(KindBlock, "stone", []byte(`{"textures":{"all":"block/granite"}}`))
	require.NoError(t, err)

	definition, ok := store.Get(Key{KindBlock, "stone"})
	require.True(t, ok)
	assert.Equal(t, "block/granite", definition.Textures["all"])
	assert.Equal(t, 1, store.Len())
}

func TestStoreMissing(t *testing.T) {
	store := NewStore()
	_, ok := store.Get(Key{KindBlock, "void"})
	assert.False(t, ok)
}

func TestModelOf(t *testing.T) {
	cases := []struct {
		entry    string
		expected string
		ok       bool
	}{
		{`{"model":"block/stone"}`, "block/stone", true},
		{`[{"model":"block/oak_fence_post"},{"model":"block/other"}]`, "block/oak_fence_post", true},
		// An object without a model is still an object.
		{`{"uvlock":true}`, "", true},
		{`[]`, "", false},
		{`["nonsense"]`, "", false},
		{`"nonsense"`, "", false},
		{``, "", false},
	}

	for _, test := range cases {
		ref, ok := ModelOf([]byte(test.entry))
		assert.Equal(t, test.expected, ref, test.entry)
		assert.Equal(t, test.ok, ok, test.entry)
	}
}
