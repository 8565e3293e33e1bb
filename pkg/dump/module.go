package dump

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cfoust/mcdump/pkg/ident"
	"github.com/cfoust/mcdump/pkg/jar"
	"github.com/cfoust/mcdump/pkg/model"
	"github.com/cfoust/mcdump/pkg/resolve"

	"github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// TextureEntry pairs a block state or item model with its representative
// texture.
type TextureEntry struct {
	Name       string `json:"name"`
	BlockState string `json:"blockState,omitempty"`
	Model      string `json:"model"`
	Texture    string `json:"texture"`
}

// TextureContent embeds a texture's bytes as a data URI. A texture the
// package does not contain encodes as null.
type TextureContent struct {
	Name    string  `json:"name"`
	Texture *string `json:"texture"`
}

// Data is everything we derive from one client package.
type Data struct {
	States  map[string]json.RawMessage
	Models  map[string]json.RawMessage
	Blocks  []TextureEntry
	Items   []TextureEntry
	Content []TextureContent
}

func sortedKeys[T any](entries map[string]T) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func loadModels(store *model.Store, kind model.Kind, definitions map[string]json.RawMessage) {
	for _, name := range sortedKeys(definitions) {
		err := store.Load(kind, name, definitions[name])
		if err != nil {
			log.Warn().Err(err).Msgf("skipping malformed %s model %s", kind, name)
		}
	}
}

func dataURI(data []byte) string {
	return fmt.Sprintf(
		"data:image/png;base64,%s",
		base64.StdEncoding.EncodeToString(data),
	)
}

// blockEntry derives one block state's representative texture. Every
// anomaly along the way degrades to the missing sentinel; this never
// fails.
func blockEntry(resolver *resolve.Resolver, name string, raw json.RawMessage) TextureEntry {
	modelName := ""
	texture := ""

	state, err := model.ParseBlockState(raw)
	if err != nil {
		log.Debug().Err(err).Msgf("unparseable block state %s", name)
	} else if ref := resolve.PickBlockStateModel(state); opt.IsSome(ref) {
		key := model.ParseReference(ref.Value, model.KindBlock)
		modelName = key.Name

		picked := resolve.PickTexture(resolver.Resolve(key))
		if opt.IsSome(picked) {
			normalized := ident.NormalizeTexturePath(picked.Value, "blocks")
			if opt.IsSome(normalized) {
				texture = normalized.Value
			}
		}
	}

	if texture == "" {
		texture = ident.MissingTexture
	}

	modelOut := fmt.Sprintf("%s:blocks/air", ident.Namespace)
	if modelName != "" {
		modelOut = fmt.Sprintf("%s:blocks/%s", ident.Namespace, modelName)
	}

	return TextureEntry{
		Name:       name,
		BlockState: name,
		Model:      modelOut,
		Texture:    texture,
	}
}

func itemEntry(resolver *resolve.Resolver, name string) TextureEntry {
	texture := ""

	key := model.Key{Kind: model.KindItem, Name: name}
	picked := resolve.PickTexture(resolver.Resolve(key))
	if opt.IsSome(picked) {
		normalized := ident.NormalizeTexturePath(picked.Value, "items")
		if opt.IsSome(normalized) {
			texture = normalized.Value
		}
	}

	if texture == "" {
		texture = ident.MissingTexture
	}

	return TextureEntry{
		Name:    name,
		Model:   name,
		Texture: texture,
	}
}

// Build runs the resolution pipeline over a loaded package. The result
// always contains one entry per block state and one per item model,
// regardless of input quality.
func Build(pack *jar.Pack) *Data {
	store := model.NewStore()
	loadModels(store, model.KindBlock, pack.BlockModels())
	loadModels(store, model.KindItem, pack.ItemModels())

	resolver := resolve.NewResolver(store)

	states := pack.BlockStates()
	blocks := make([]TextureEntry, 0, len(states))
	for _, name := range sortedKeys(states) {
		blocks = append(blocks, blockEntry(resolver, name, states[name]))
	}

	items := make([]TextureEntry, 0, len(pack.ItemModels()))
	for _, name := range sortedKeys(pack.ItemModels()) {
		items = append(items, itemEntry(resolver, name))
	}

	content := make([]TextureContent, 0, len(blocks)+len(items))
	for _, entry := range append(append([]TextureEntry{}, blocks...), items...) {
		var embedded *string

		data, err := pack.Texture(entry.Texture)
		if err == nil {
			uri := dataURI(data)
			embedded = &uri
		}

		content = append(content, TextureContent{
			Name:    entry.Name,
			Texture: embedded,
		})
	}

	log.Info().Msgf(
		"resolved %d block states, %d item models",
		len(blocks),
		len(items),
	)

	return &Data{
		States:  states,
		Models:  pack.BlockModels(),
		Blocks:  blocks,
		Items:   items,
		Content: content,
	}
}
