// Package producer compiles source text into scope graphs. Parsing is
// delegated to tree-sitter; everything language-specific lives in
// declarative rule tables, so traversal never branches on language names.
//
// The producer upholds the contract the scopes core relies on: emitted
// graphs are laminar, carry at least one root covering every addressable
// line, and parse failures degrade to that single-root fallback instead of
// surfacing an error.
package producer

// Scope kind labels emitted by the built-in rule tables. This is the
// closed set used at the rule boundary; the core treats kinds as opaque
// strings and never inspects them.
const (
	KindModule    = "module"
	KindClass     = "class"
	KindStruct    = "struct"
	KindInterface = "interface"
	KindType      = "type"
	KindFunction  = "function"
	KindMethod    = "method"
	KindIf        = "if"
	KindElif      = "elif"
	KindElse      = "else"
	KindFor       = "for"
	KindWhile     = "while"
	KindWith      = "with"
	KindTry       = "try"
	KindExcept    = "except"
	KindFinally   = "finally"
	KindMatch     = "match"
	KindCase      = "case"
	KindSwitch    = "switch"
	KindImpl      = "impl"
	KindNamespace = "namespace"
	KindDoc       = "doc"
)

// NodePolicy describes how one syntax node type behaves structurally.
// Node types without a policy are transparent: traversal descends through
// them without emitting anything.
type NodePolicy struct {
	// Scope emits a scope for this node type.
	Scope bool

	// Kind overrides the emitted kind label; empty keeps the raw node type.
	Kind string

	// Wrapper marks a forwarding node: it emits no scope itself, but its
	// start line is lent to a child selected by a WrapperRule (decorated
	// definitions, export statements).
	Wrapper bool

	// HeaderLines overrides the computed header size when > 0.
	HeaderLines int
}

// WrapperRule selects which child of a wrapper node inherits its start line.
// The first child whose type appears in TargetTypes wins.
type WrapperRule struct {
	WrapperType string
	TargetTypes []string
}

// DocRule recognizes documentation scopes: a body whose first named child
// is a StatementType node wrapping a ValueType node becomes a "doc" scope
// (Python docstrings are expression_statement around string).
type DocRule struct {
	StatementType string
	ValueType     string

	// HeaderLines stays visible when the doc scope folds, typically the
	// opening quotes line plus the summary line.
	HeaderLines int
}

// LanguageRules is the complete structural rule table for one language.
// Pure data: no grammar references, no I/O, no callbacks.
type LanguageRules struct {
	Policies map[string]NodePolicy
	Wrappers []WrapperRule
	Doc      *DocRule
}

// policyFor resolves the policy for a node type; unlisted types are
// transparent.
func (r LanguageRules) policyFor(nodeType string) NodePolicy {
	return r.Policies[nodeType]
}
