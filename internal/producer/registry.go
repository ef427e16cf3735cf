package producer

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// LanguageSpec binds a grammar to its structural rule table. A nil Grammar
// means the language always compiles to the single-root fallback graph.
type LanguageSpec struct {
	Grammar *sitter.Language
	Rules   LanguageRules
}

// Registry maps language identifiers to specs. It is an explicit value
// handed to New — never process-wide state — so tests can run synthetic
// rule sets and callers can layer overlays without import-order coupling.
type Registry struct {
	specs map[string]LanguageSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]LanguageSpec)}
}

// Default returns a fresh registry with every bundled language wired to
// its built-in grammar and rule table. The returned registry is owned by
// the caller; registering into it does not affect other registries.
func Default() *Registry {
	reg := NewRegistry()
	for name, rules := range builtinRules {
		grammar, ok := Grammar(name)
		if !ok {
			continue
		}
		reg.Register(name, LanguageSpec{Grammar: grammar, Rules: rules})
	}
	return reg
}

// Register adds or replaces a language spec. Names are case-insensitive.
func (r *Registry) Register(name string, spec LanguageSpec) {
	r.specs[strings.ToLower(name)] = spec
}

// Lookup resolves a language name to its spec.
func (r *Registry) Lookup(name string) (LanguageSpec, bool) {
	spec, ok := r.specs[strings.ToLower(name)]
	return spec, ok
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.specs))
	for name := range r.specs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
