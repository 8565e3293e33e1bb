package jar

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/cfoust/mcdump/pkg/ident"
	"github.com/cfoust/mcdump/pkg/store"
)

const (
	statePrefix      = "assets/minecraft/blockstates/"
	blockModelPrefix = "assets/minecraft/models/block/"
	itemModelPrefix  = "assets/minecraft/models/item/"
	texturePrefix    = "assets/minecraft/textures/"
)

// Pack is a read-only view of one client package. Definitions are
// decoded eagerly; texture bytes are read lazily on lookup.
type Pack struct {
	blockstates map[string]json.RawMessage
	blockModels map[string]json.RawMessage
	itemModels  map[string]json.RawMessage

	// normalized texture path (e.g. blocks/stone.png) -> package entry
	textures map[string]*zip.File
}

func readEntry(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// definitionName keys a definition entry by its basename, the way the
// datasets have always been keyed; these directories are flat in real
// packages.
func definitionName(entry string, prefix string) (string, bool) {
	if !strings.HasPrefix(entry, prefix) || !strings.HasSuffix(entry, ".json") {
		return "", false
	}

	return strings.TrimSuffix(path.Base(entry), ".json"), true
}

// normalizeTextureEntry rewrites a texture path relative to the textures
// root into its canonical category form.
func normalizeTextureEntry(rel string) string {
	switch {
	case strings.HasPrefix(rel, "block/"):
		return "blocks/" + rel[len("block/"):]
	case strings.HasPrefix(rel, "item/"):
		return "items/" + rel[len("item/"):]
	}
	return rel
}

// Load indexes a client package from its raw zip bytes.
func Load(data []byte) (*Pack, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("could not open package: %w", err)
	}

	pack := &Pack{
		blockstates: make(map[string]json.RawMessage),
		blockModels: make(map[string]json.RawMessage),
		itemModels:  make(map[string]json.RawMessage),
		textures:    make(map[string]*zip.File),
	}

	definitions := []struct {
		prefix string
		target map[string]json.RawMessage
	}{
		{statePrefix, pack.blockstates},
		{blockModelPrefix, pack.blockModels},
		{itemModelPrefix, pack.itemModels},
	}

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		name := file.Name

		if strings.HasPrefix(name, texturePrefix) {
			rel := normalizeTextureEntry(name[len(texturePrefix):])
			pack.textures[rel] = file
			continue
		}

		for _, family := range definitions {
			key, ok := definitionName(name, family.prefix)
			if !ok {
				continue
			}

			data, err := readEntry(file)
			if err != nil {
				return nil, fmt.Errorf("could not read %s: %w", name, err)
			}

			family.target[key] = json.RawMessage(data)
			break
		}
	}

	return pack, nil
}

func (p *Pack) BlockStates() map[string]json.RawMessage {
	return p.blockstates
}

func (p *Pack) BlockModels() map[string]json.RawMessage {
	return p.blockModels
}

func (p *Pack) ItemModels() map[string]json.RawMessage {
	return p.itemModels
}

// Texture looks up the bytes for a canonical texture identifier like
// "minecraft:blocks/stone". A texture that does not exist in the package
// is store.Missing, which callers treat as a valid outcome.
func (p *Pack) Texture(id string) ([]byte, error) {
	rel := ident.StripNamespace(id) + ".png"

	file, ok := p.textures[rel]
	if !ok {
		return nil, store.Missing
	}

	return readEntry(file)
}

// EachTexture visits every texture entry in path order.
func (p *Pack) EachTexture(handler func(path string, data []byte) error) error {
	paths := make([]string, 0, len(p.textures))
	for path := range p.textures {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := readEntry(p.textures[path])
		if err != nil {
			return err
		}

		if err := handler(path, data); err != nil {
			return err
		}
	}

	return nil
}
