package ident

import (
	"fmt"
	"strings"

	"github.com/repeale/fp-go/option"
)

const (
	// The namespace assumed whenever an identifier omits one.
	Namespace = "minecraft"

	// Identifier emitted when resolution yields no usable texture.
	MissingTexture = "minecraft:missingno"
)

const nsPrefix = Namespace + ":"

// StripNamespace removes the default namespace prefix if present.
func StripNamespace(value string) string {
	if strings.HasPrefix(value, nsPrefix) {
		return value[len(nsPrefix):]
	}
	return value
}

// NormalizeTexturePath turns a texture path as it appears inside a model
// definition into its canonical, fully namespaced form. Legacy singular
// category prefixes are rewritten to their plural forms and uncategorized
// paths get defaultCategory. Empty input yields None.
func NormalizeTexturePath(value string, defaultCategory string) opt.Option[string] {
	if value == "" {
		return opt.None[string]()
	}

	value = StripNamespace(value)

	switch {
	case strings.HasPrefix(value, "block/"):
		value = "blocks/" + value[len("block/"):]
	case strings.HasPrefix(value, "item/"):
		value = "items/" + value[len("item/"):]
	case strings.HasPrefix(value, "blocks/") || strings.HasPrefix(value, "items/"):
		// already canonical
	case !strings.Contains(value, "/"):
		value = fmt.Sprintf("%s/%s", defaultCategory, value)
	}

	return opt.Some(fmt.Sprintf("%s:%s", Namespace, value))
}
