package bundle

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cfoust/mcdump/pkg/dump"
	"github.com/cfoust/mcdump/pkg/jar"
	"github.com/cfoust/mcdump/pkg/store"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

const INDEX_NAME = "index.cbor"

type Dataset struct {
	_    struct{} `cbor:",toarray"`
	Name string
	Hash string
	Size uint
}

// Index describes every dataset in a finished bundle so consumers can
// verify and fetch them without listing the directory.
type Index struct {
	Version  string
	Datasets []Dataset
}

// Bundle writes one version's datasets and textures into a directory.
type Bundle struct {
	dir      string
	compress bool
	datasets []Dataset
}

func NewBundle(dir string, compress bool) *Bundle {
	return &Bundle{
		dir:      dir,
		compress: compress,
		datasets: make([]Dataset, 0),
	}
}

func (b *Bundle) writeDataset(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", name, err)
	}

	if b.compress {
		var buffer bytes.Buffer
		writer := gzip.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}

		name = name + ".gz"
		data = buffer.Bytes()
	}

	err = store.WriteBytes(data, filepath.Join(b.dir, name))
	if err != nil {
		return err
	}

	b.datasets = append(b.datasets, Dataset{
		Name: name,
		Hash: fmt.Sprintf("%x", sha256.Sum256(data)),
		Size: uint(len(data)),
	})

	log.Debug().Msgf("wrote %s (%d bytes)", name, len(data))
	return nil
}

// WriteData persists the five datasets. Map-valued datasets marshal with
// sorted keys and list-valued ones are already in deterministic order,
// so repeated runs on identical input produce identical bytes.
func (b *Bundle) WriteData(data *dump.Data) error {
	datasets := []struct {
		name  string
		value any
	}{
		{"blocks_states.json", data.States},
		{"blocks_models.json", data.Models},
		{"blocks_textures.json", data.Blocks},
		{"items_textures.json", data.Items},
		{"texture_content.json", data.Content},
	}

	for _, dataset := range datasets {
		if err := b.writeDataset(dataset.name, dataset.value); err != nil {
			return err
		}
	}

	return nil
}

// WriteTextures copies every texture file out of the package into the
// bundle directory, preserving the canonical category layout.
func (b *Bundle) WriteTextures(pack *jar.Pack) error {
	count := 0
	err := pack.EachTexture(func(path string, data []byte) error {
		count++
		return store.WriteBytes(data, filepath.Join(b.dir, path))
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("copied %d textures", count)
	return nil
}

// WriteIndex records the datasets written so far. Call it last.
func (b *Bundle) WriteIndex(version string) error {
	data, err := cbor.Marshal(Index{
		Version:  version,
		Datasets: b.datasets,
	})
	if err != nil {
		return err
	}

	return store.WriteBytes(data, filepath.Join(b.dir, INDEX_NAME))
}
