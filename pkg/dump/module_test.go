package dump

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/cfoust/mcdump/pkg/jar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPackage(t *testing.T, files map[string]string) *jar.Pack {
	t.Helper()

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)

	for name, content := range files {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	pack, err := jar.Load(buffer.Bytes())
	require.NoError(t, err)
	return pack
}

func TestBuildBlock(t *testing.T) {
	pack := buildPackage(t, map[string]string{
		"assets/minecraft/blockstates/stone.json":     `{"variants":{"":{"model":"minecraft:block/stone"}}}`,
		"assets/minecraft/models/block/cube_all.json": `{"textures":{"particle":"#all"}}`,
		"assets/minecraft/models/block/stone.json":    `{"parent":"block/cube_all","textures":{"all":"block/stone"}}`,
		"assets/minecraft/textures/block/stone.png":   "stone-bytes",
	})

	data := Build(pack)

	require.Len(t, data.Blocks, 1)
	entry := data.Blocks[0]
	assert.Equal(t, "stone", entry.Name)
	assert.Equal(t, "stone", entry.BlockState)
	assert.Equal(t, "minecraft:blocks/stone", entry.Model)
	assert.Equal(t, "minecraft:blocks/stone", entry.Texture)

	require.Len(t, data.Content, 1)
	require.NotNil(t, data.Content[0].Texture)
	expected := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("stone-bytes"))
	assert.Equal(t, expected, *data.Content[0].Texture)
}

func TestBuildUnresolvable(t *testing.T) {
	pack := buildPackage(t, map[string]string{
		"assets/minecraft/blockstates/mystery.json": `{"variants":{}}`,
	})

	data := Build(pack)

	require.Len(t, data.Blocks, 1)
	entry := data.Blocks[0]
	assert.Equal(t, "minecraft:blocks/air", entry.Model)
	assert.Equal(t, "minecraft:missingno", entry.Texture)

	require.Len(t, data.Content, 1)
	assert.Nil(t, data.Content[0].Texture)
}

func TestBuildItems(t *testing.T) {
	pack := buildPackage(t, map[string]string{
		"assets/minecraft/models/item/stick.json":  `{"parent":"item/generated","textures":{"layer0":"item/stick"}}`,
		"assets/minecraft/textures/item/stick.png": "stick-bytes",
	})

	data := Build(pack)

	require.Len(t, data.Items, 1)
	entry := data.Items[0]
	assert.Equal(t, "stick", entry.Name)
	assert.Equal(t, "stick", entry.Model)
	assert.Equal(t, "", entry.BlockState)
	assert.Equal(t, "minecraft:items/stick", entry.Texture)
}

func TestBuildOrdering(t *testing.T) {
	pack := buildPackage(t, map[string]string{
		"assets/minecraft/blockstates/zebra.json": `{"variants":{}}`,
		"assets/minecraft/blockstates/apple.json": `{"variants":{}}`,
		"assets/minecraft/models/item/b.json":     `{}`,
		"assets/minecraft/models/item/a.json":     `{}`,
	})

	data := Build(pack)

	assert.Equal(t, "apple", data.Blocks[0].Name)
	assert.Equal(t, "zebra", data.Blocks[1].Name)
	assert.Equal(t, "a", data.Items[0].Name)
	assert.Equal(t, "b", data.Items[1].Name)

	// Block entries precede item entries in the content list.
	require.Len(t, data.Content, 4)
	assert.Equal(t, "apple", data.Content[0].Name)
	assert.Equal(t, "a", data.Content[2].Name)
}
