package pleat

import (
	"github.com/jward/pleat/internal/producer"
	"github.com/jward/pleat/internal/scopes"
)

// Public type aliases for the internal core and producer types used in the
// Engine API. These are Go type aliases (=) — identical to the internal types
// at compile time. External consumers use these names; no conversion is
// needed.

type Scope = scopes.Scope
type ScopeGraph = scopes.ScopeGraph
type Index = scopes.Index
type Query = scopes.Query
type Axis = scopes.Axis
type Range = scopes.Range
type Registry = producer.Registry
type LanguageSpec = producer.LanguageSpec

// NoParent marks a root scope's parent id.
const NoParent = scopes.NoParent

// Relation axes accepted by Query.Axis.
const (
	AxisSelf        = scopes.AxisSelf
	AxisParent      = scopes.AxisParent
	AxisChildren    = scopes.AxisChildren
	AxisAncestors   = scopes.AxisAncestors
	AxisDescendants = scopes.AxisDescendants
	AxisSiblings    = scopes.AxisSiblings
	AxisNext        = scopes.AxisNext
	AxisPrev        = scopes.AxisPrev
	AxisNextOfKind  = scopes.AxisNextOfKind
	AxisPrevOfKind  = scopes.AxisPrevOfKind
	AxisAllOfKind   = scopes.AxisAllOfKind
)

// Axes lists every supported axis, sorted.
func Axes() []Axis { return scopes.Axes() }

// ValidAxis reports whether a is a supported axis name.
func ValidAxis(a Axis) bool { return scopes.ValidAxis(a) }

// TotalLines counts the addressable lines of source text. Empty source has
// one line; a trailing newline does not open another.
func TotalLines(source string) int { return scopes.TotalLines(source) }

// BuildIndex derives the navigation index for a scope graph.
func BuildIndex(g ScopeGraph) *Index { return scopes.BuildIndex(g) }

// Normalize canonicalizes fold ranges: drops degenerates, clamps to
// [1, maxLine] when maxLine > 0, sorts, and merges overlapping or
// line-adjacent ranges.
func Normalize(ranges []Range, maxLine int) []Range { return scopes.Normalize(ranges, maxLine) }

// NewRegistry returns an empty language registry.
func NewRegistry() *Registry { return producer.NewRegistry() }

// DefaultRegistry returns a fresh registry with all bundled languages.
func DefaultRegistry() *Registry { return producer.Default() }

// LoadRulesFile parses a TOML rule overlay into reg.
func LoadRulesFile(reg *Registry, path string) error { return producer.LoadRulesFile(reg, path) }

// LoadRules parses in-memory TOML rule text into reg.
func LoadRules(reg *Registry, data string) error { return producer.LoadRules(reg, data) }

// LanguageForFile maps a file path to its canonical language name by
// extension.
func LanguageForFile(path string) (string, bool) { return producer.LanguageForFile(path) }
