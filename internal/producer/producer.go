package producer

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/pleat/internal/scopes"
)

// Producer compiles source text into scope graphs using tree-sitter and
// the rule tables of its registry. A Producer is stateless beyond the
// registry reference and safe for concurrent use.
type Producer struct {
	reg *Registry
}

// New creates a Producer over the given registry. A nil registry gets the
// built-in defaults.
func New(reg *Registry) *Producer {
	if reg == nil {
		reg = Default()
	}
	return &Producer{reg: reg}
}

// Registry returns the registry the Producer compiles with.
func (p *Producer) Registry() *Registry {
	return p.reg
}

// Compile turns source text into a ScopeGraph. It never fails: unknown
// languages, missing grammars, and parse errors all degrade to a
// single-root module graph covering every addressable line.
func (p *Producer) Compile(ctx context.Context, source, language string) scopes.ScopeGraph {
	spec, ok := p.reg.Lookup(language)
	if !ok || spec.Grammar == nil {
		return fallbackGraph(source)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil || tree == nil {
		return fallbackGraph(source)
	}
	defer tree.Close()

	total := scopes.TotalLines(source)
	b := &builder{
		rules:   spec.Rules,
		maxLine: total,
		nextID:  1,
		out: []scopes.Scope{{
			ID:          0,
			ParentID:    scopes.NoParent,
			Kind:        KindModule,
			Start:       1,
			End:         total,
			HeaderLines: 1,
		}},
	}

	root := tree.RootNode()
	b.emitDoc(root, 0) // module-level docstring, when the rules define one
	b.walk(root, 0)

	return scopes.NewScopeGraph(b.out)
}

// fallbackGraph is the producer contract's degraded result: one module
// scope covering the whole source.
func fallbackGraph(source string) scopes.ScopeGraph {
	return scopes.NewScopeGraph([]scopes.Scope{{
		ID:          0,
		ParentID:    scopes.NoParent,
		Kind:        KindModule,
		Start:       1,
		End:         scopes.TotalLines(source),
		HeaderLines: 1,
	}})
}

// frame is one unit of traversal work.
type frame struct {
	node     *sitter.Node
	parentID int

	// forcedStart moves the emitted scope's start line earlier, used by
	// wrapper forwarding. Zero means no override.
	forcedStart int
}

// builder accumulates scopes during an explicit-stack tree walk. Ids are
// assigned in visit order; the canonical sort in NewScopeGraph is the
// ordering barrier.
type builder struct {
	rules   LanguageRules
	maxLine int
	nextID  int
	out     []scopes.Scope
	stack   []frame
}

// walk traverses the subtree under node, attaching emitted scopes below
// parentID. The work stack replaces recursion so no traversal state is
// shared through captured variables.
func (b *builder) walk(node *sitter.Node, parentID int) {
	b.pushChildren(node, parentID)
	for len(b.stack) > 0 {
		f := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.visit(f)
	}
}

// pushChildren schedules node's children in reverse so the LIFO stack
// visits them in document order.
func (b *builder) pushChildren(node *sitter.Node, parentID int) {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		b.stack = append(b.stack, frame{node: node.Child(i), parentID: parentID})
	}
}

func (b *builder) visit(f frame) {
	node := f.node
	pol := b.rules.policyFor(node.Type())

	if pol.Wrapper {
		b.visitWrapper(f)
		return
	}

	if !pol.Scope {
		b.pushChildren(node, f.parentID)
		return
	}

	start := int(node.StartPoint().Row) + 1
	end := int(node.EndPoint().Row) + 1
	if f.forcedStart > 0 && f.forcedStart < start {
		start = f.forcedStart
	}
	// Keep emitted spans inside the module root so the graph stays laminar
	// even when tree-sitter reports positions past the last line.
	if start > b.maxLine {
		start = b.maxLine
	}
	if end > b.maxLine {
		end = b.maxLine
	}
	if end < start {
		end = start
	}

	header := 1
	if body := node.ChildByFieldName("body"); body != nil {
		if bs := int(body.StartPoint().Row) + 1; bs > start {
			header = bs - start
		}
	}
	if pol.HeaderLines > 0 {
		header = pol.HeaderLines
	}

	kind := pol.Kind
	if kind == "" {
		kind = node.Type()
	}

	sid := b.nextID
	b.nextID++
	b.out = append(b.out, scopes.Scope{
		ID:          sid,
		ParentID:    f.parentID,
		Kind:        kind,
		Start:       start,
		End:         end,
		HeaderLines: header,
	})

	if body := node.ChildByFieldName("body"); body != nil {
		b.emitDoc(body, sid)
	}
	b.pushChildren(node, sid)
}

// visitWrapper forwards the wrapper's start line into the selected target
// child; all children continue under the wrapper's parent.
func (b *builder) visitWrapper(f frame) {
	node := f.node
	target := b.wrapperTargetIndex(node)
	forced := int(node.StartPoint().Row) + 1
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		fr := frame{node: node.Child(i), parentID: f.parentID}
		if i == target {
			fr.forcedStart = forced
		}
		b.stack = append(b.stack, fr)
	}
}

// wrapperTargetIndex returns the index of the child that inherits the
// wrapper's start line, or -1 when no rule matches.
func (b *builder) wrapperTargetIndex(node *sitter.Node) int {
	for _, wr := range b.rules.Wrappers {
		if node.Type() != wr.WrapperType {
			continue
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			childType := node.Child(i).Type()
			for _, t := range wr.TargetTypes {
				if childType == t {
					return i
				}
			}
		}
	}
	return -1
}

// emitDoc inspects the first named statement of a body and emits a doc
// scope when it matches the language's DocRule.
func (b *builder) emitDoc(body *sitter.Node, parentID int) {
	rule := b.rules.Doc
	if rule == nil || body.NamedChildCount() == 0 {
		return
	}
	first := body.NamedChild(0)
	if first.Type() != rule.StatementType {
		return
	}
	if first.NamedChildCount() == 0 || first.NamedChild(0).Type() != rule.ValueType {
		return
	}

	start := int(first.StartPoint().Row) + 1
	end := int(first.EndPoint().Row) + 1
	if start > b.maxLine {
		start = b.maxLine
	}
	if end > b.maxLine {
		end = b.maxLine
	}
	if end < start {
		end = start
	}

	sid := b.nextID
	b.nextID++
	b.out = append(b.out, scopes.Scope{
		ID:          sid,
		ParentID:    parentID,
		Kind:        KindDoc,
		Start:       start,
		End:         end,
		HeaderLines: rule.HeaderLines,
	})
}
