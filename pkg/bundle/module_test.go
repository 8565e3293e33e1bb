package bundle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cfoust/mcdump/pkg/dump"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *dump.Data {
	uri := "data:image/png;base64,AAAA"
	return &dump.Data{
		States: map[string]json.RawMessage{
			"stone": json.RawMessage(`{"variants":{"":{"model":"block/stone"}}}`),
		},
		Models: map[string]json.RawMessage{
			"stone": json.RawMessage(`{"textures":{"all":"block/stone"}}`),
		},
		Blocks: []dump.TextureEntry{
			{Name: "stone", BlockState: "stone", Model: "minecraft:blocks/stone", Texture: "minecraft:blocks/stone"},
		},
		Items: []dump.TextureEntry{
			{Name: "stick", Model: "stick", Texture: "minecraft:missingno"},
		},
		Content: []dump.TextureContent{
			{Name: "stone", Texture: &uri},
			{Name: "stick", Texture: nil},
		},
	}
}

func TestWriteData(t *testing.T) {
	dir := t.TempDir()
	b := NewBundle(dir, false)

	require.NoError(t, b.WriteData(sampleData()))
	require.NoError(t, b.WriteIndex("1.21.11"))

	content, err := os.ReadFile(filepath.Join(dir, "texture_content.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"stone","texture":"data:image/png;base64,AAAA"},
		{"name":"stick","texture":null}
	]`, string(content))

	indexData, err := os.ReadFile(filepath.Join(dir, INDEX_NAME))
	require.NoError(t, err)

	var index Index
	require.NoError(t, cbor.Unmarshal(indexData, &index))
	assert.Equal(t, "1.21.11", index.Version)
	require.Len(t, index.Datasets, 5)
	assert.Equal(t, "blocks_states.json", index.Datasets[0].Name)
	assert.NotEmpty(t, index.Datasets[0].Hash)
}

func TestWriteDataCompressed(t *testing.T) {
	dir := t.TempDir()
	b := NewBundle(dir, true)

	require.NoError(t, b.WriteData(sampleData()))
	assert.FileExists(t, filepath.Join(dir, "blocks_states.json.gz"))
}

func TestReproducible(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	require.NoError(t, NewBundle(first, false).WriteData(sampleData()))
	require.NoError(t, NewBundle(second, false).WriteData(sampleData()))

	names := []string{
		"blocks_states.json",
		"blocks_models.json",
		"blocks_textures.json",
		"items_textures.json",
		"texture_content.json",
	}
	for _, name := range names {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}
