package resolve

import (
	"sort"

	"github.com/cfoust/mcdump/pkg/model"

	"github.com/repeale/fp-go/option"
)

// Texture variables most likely to represent a block or item visually,
// in the order we prefer them.
var TEXTURE_PRIORITY = []string{
	"all",
	"texture",
	"side",
	"end",
	"top",
	"bottom",
	"layer0",
	"particle",
}

func Find[T any](handler func(x T) bool) func(list []T) opt.Option[T] {
	return func(list []T) opt.Option[T] {
		for _, item := range list {
			if handler(item) {
				return opt.Some(item)
			}
		}

		return opt.None[T]()
	}
}

// PickTexture chooses one representative texture path from a resolved
// table: the first priority variable that holds a string, otherwise the
// lexicographically smallest string-valued key. Iteration order of the
// table never influences the result.
func PickTexture(textures map[string]any) opt.Option[string] {
	preferred := Find(func(name string) bool {
		_, ok := textures[name].(string)
		return ok
	})(TEXTURE_PRIORITY)

	if opt.IsSome(preferred) {
		return opt.Some(textures[preferred.Value].(string))
	}

	names := make([]string, 0, len(textures))
	for name, value := range textures {
		if _, ok := value.(string); ok {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return opt.None[string]()
	}

	sort.Strings(names)
	return opt.Some(textures[names[0]].(string))
}

// PickBlockStateModel chooses one model reference from a block state:
// the variant at the smallest key when variants exist, otherwise the
// first multipart case. The choice is arbitrary but stable. A variant
// entry that is an object settles the question even when it carries no
// model reference; only a non-object entry falls through to multipart.
func PickBlockStateModel(state *model.BlockState) opt.Option[string] {
	if len(state.Variants) > 0 {
		keys := make([]string, 0, len(state.Variants))
		for key := range state.Variants {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		ref, ok := model.ModelOf(state.Variants[keys[0]])
		if ok {
			if ref == "" {
				return opt.None[string]()
			}
			return opt.Some(ref)
		}
	}

	if len(state.Multipart) > 0 {
		if ref, ok := model.ModelOf(state.Multipart[0].Apply); ok && ref != "" {
			return opt.Some(ref)
		}
	}

	return opt.None[string]()
}
