package model

import (
	"encoding/json"
	"strings"

	"github.com/cfoust/mcdump/pkg/ident"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	KindBlock Kind = "block"
	KindItem  Kind = "item"
)

// Key uniquely identifies a model definition.
type Key struct {
	Kind Kind
	Name string
}

// Definition is one model as it appears in the client package. Texture
// values are either literal paths, indirections ("#name"), or structured
// descriptors we pass through untouched.
type Definition struct {
	Parent   string         `json:"parent"`
	Textures map[string]any `json:"textures"`
}

// ParseReference maps a model reference, which may be namespaced and may
// carry a legacy singular or canonical plural category prefix, to a Key.
// References without a recognized prefix keep defaultKind.
func ParseReference(ref string, defaultKind Kind) Key {
	ref = ident.StripNamespace(ref)

	prefixes := []struct {
		prefix string
		kind   Kind
	}{
		{"block/", KindBlock},
		{"item/", KindItem},
		{"blocks/", KindBlock},
		{"items/", KindItem},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(ref, p.prefix) {
			return Key{Kind: p.kind, Name: ref[len(p.prefix):]}
		}
	}

	return Key{Kind: defaultKind, Name: ref}
}

// Store indexes every model definition for one pipeline run. It is filled
// completely before any resolution happens and never mutated afterwards.
type Store struct {
	models map[Key]*Definition
}

func NewStore() *Store {
	return &Store{
		models: make(map[Key]*Definition),
	}
}

// Load inserts a definition. Duplicate keys should not occur in a
// well-formed package; when they do, the last write wins.
func (s *Store) Load(kind Kind, name string, data []byte) error {
	var definition Definition
	if err := json.Unmarshal(data, &definition); err != nil {
		return err
	}

	key := Key{Kind: kind, Name: name}
	if _, ok := s.models[key]; ok {
		log.Warn().Msgf("duplicate model definition %s/%s", kind, name)
	}
	s.models[key] = &definition
	return nil
}

func (s *Store) Get(key Key) (*Definition, bool) {
	definition, ok := s.models[key]
	return definition, ok
}

func (s *Store) Len() int {
	return len(s.models)
}
