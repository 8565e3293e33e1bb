package resolve

import (
	"strings"

	"github.com/cfoust/mcdump/pkg/model"
)

// The most hops a texture variable indirection chain may take before we
// give up and keep the last resolved value.
const indirectionLimit = 10

// Resolver flattens a model's inheritance chain into its effective
// texture table. It never fails: missing models, cyclic parents, and
// dangling references all degrade to partial or empty results.
type Resolver struct {
	store *model.Store
}

func NewResolver(store *model.Store) *Resolver {
	return &Resolver{
		store: store,
	}
}

// Resolve returns the fully dereferenced texture table for a model.
// Every string value in the result is a literal texture path; structured
// descriptor values pass through untouched.
func (r *Resolver) Resolve(key model.Key) map[string]any {
	return r.resolve(key, nil)
}

func (r *Resolver) resolve(key model.Key, visiting map[model.Key]struct{}) map[string]any {
	if _, ok := visiting[key]; ok {
		return map[string]any{}
	}

	definition, ok := r.store.Get(key)
	if !ok {
		return map[string]any{}
	}

	// Each recursive call gets its own copy of the visited set so that
	// sibling branches cannot observe each other's traversal.
	branch := make(map[model.Key]struct{}, len(visiting)+1)
	for k := range visiting {
		branch[k] = struct{}{}
	}
	branch[key] = struct{}{}

	textures := make(map[string]any)

	// Parent entries first; the child's own table overrides key-for-key.
	if definition.Parent != "" {
		parent := model.ParseReference(definition.Parent, key.Kind)
		for name, value := range r.resolve(parent, branch) {
			textures[name] = value
		}
	}

	for name, value := range definition.Textures {
		textures[name] = value
	}

	resolved := make(map[string]any, len(textures))
	for name, value := range textures {
		resolved[name] = dereference(textures, value)
	}

	return resolved
}

// dereference follows a "#name" indirection chain through the table,
// stopping at a literal, a dangling reference, a non-string target, or
// the hop limit.
func dereference(textures map[string]any, value any) any {
	path, ok := value.(string)
	if !ok {
		return value
	}

	for depth := 0; depth < indirectionLimit; depth++ {
		if !strings.HasPrefix(path, "#") {
			break
		}

		target, ok := textures[path[1:]].(string)
		if !ok {
			break
		}

		path = target
	}

	return path
}
