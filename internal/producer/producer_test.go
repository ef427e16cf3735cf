package producer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/pleat/internal/scopes"
)

func compile(t *testing.T, source, language string) scopes.ScopeGraph {
	t.Helper()
	return New(nil).Compile(context.Background(), source, language)
}

func findKind(g scopes.ScopeGraph, kind string) []scopes.Scope {
	var out []scopes.Scope
	for _, s := range g.Scopes() {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// Fallback contract
// =============================================================================

func TestCompileUnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()
	g := compile(t, "line one\nline two\nline three", "klingon")

	require.Equal(t, 1, g.Len())
	root := g.At(0)
	assert.Equal(t, KindModule, root.Kind)
	assert.Equal(t, 1, root.Start)
	assert.Equal(t, 3, root.End)
	assert.True(t, root.IsRoot())
}

func TestCompileEmptySource(t *testing.T) {
	t.Parallel()
	for _, lang := range []string{"python", "go", "nonsense"} {
		g := compile(t, "", lang)
		require.GreaterOrEqual(t, g.Len(), 1, "language %s", lang)
		root := g.At(0)
		assert.Equal(t, KindModule, root.Kind, "language %s", lang)
		assert.Equal(t, 1, root.Start, "language %s", lang)
		assert.Equal(t, 1, root.End, "language %s", lang)
	}
}

func TestCompileAlwaysHasFullCoverageRoot(t *testing.T) {
	t.Parallel()
	sources := []string{
		"",
		"x = 1\n",
		"def f():\n    pass\n",
		"class A:\n    def m(self):\n        return 1\n",
		"this is not (valid python ]]]\n\n@@@\n",
	}
	for _, src := range sources {
		g := compile(t, src, "python")
		require.GreaterOrEqual(t, g.Len(), 1)
		root := g.At(0)
		assert.Equal(t, 1, root.Start, "source %q", src)
		assert.Equal(t, scopes.TotalLines(src), root.End, "source %q", src)
		assert.True(t, root.IsRoot(), "source %q", src)
	}
}

// =============================================================================
// Python structural extraction
// =============================================================================

func TestCompilePythonFunction(t *testing.T) {
	t.Parallel()
	g := compile(t, "def f():\n    x = 1\n    y = 2\n", "python")

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	f := funcs[0]
	assert.Equal(t, 1, f.Start)
	assert.Equal(t, 3, f.End)
	assert.Equal(t, 1, f.HeaderLines)
	assert.Equal(t, 0, f.ParentID) // module is always id 0

	body, ok := f.Body()
	require.True(t, ok)
	assert.Equal(t, scopes.Range{Start: 2, End: 3}, body)
}

func TestCompilePythonNesting(t *testing.T) {
	t.Parallel()
	src := "class A:\n" +
		"    def m(self):\n" +
		"        if True:\n" +
		"            return 1\n" +
		"        return 0\n"
	g := compile(t, src, "python")

	classes := findKind(g, KindClass)
	require.Len(t, classes, 1)
	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	ifs := findKind(g, KindIf)
	require.Len(t, ifs, 1)

	assert.Equal(t, 0, classes[0].ParentID)
	assert.Equal(t, classes[0].ID, funcs[0].ParentID)
	assert.Equal(t, funcs[0].ID, ifs[0].ParentID)

	assert.Equal(t, 3, ifs[0].Start)
	assert.Equal(t, 4, ifs[0].End)
}

func TestCompileDecoratorExtendsHeader(t *testing.T) {
	t.Parallel()
	src := "@decorator\n" +
		"def f():\n" +
		"    x = 1\n" +
		"    y = 2\n"
	g := compile(t, src, "python")

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	f := funcs[0]

	// The decorator line belongs to the function's header span, and no
	// separate scope exists for the decorator itself.
	assert.Equal(t, 1, f.Start)
	assert.Equal(t, 4, f.End)
	assert.Equal(t, 2, f.HeaderLines)

	body, ok := f.Body()
	require.True(t, ok)
	assert.Equal(t, scopes.Range{Start: 3, End: 4}, body)
}

func TestCompileMultiLineSignatureHeader(t *testing.T) {
	t.Parallel()
	src := "def f(\n" +
		"    a,\n" +
		"    b,\n" +
		"):\n" +
		"    return a + b\n"
	g := compile(t, src, "python")

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	assert.Equal(t, 4, funcs[0].HeaderLines) // body starts on line 5
}

func TestCompileDocstringScope(t *testing.T) {
	t.Parallel()
	src := "def f():\n" +
		"    '''Summary.\n" +
		"\n" +
		"    Detail text.\n" +
		"    '''\n" +
		"    return 1\n"
	g := compile(t, src, "python")

	docs := findKind(g, KindDoc)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, 2, doc.Start)
	assert.Equal(t, 5, doc.End)
	assert.Equal(t, 2, doc.HeaderLines)

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	assert.Equal(t, funcs[0].ID, doc.ParentID)
}

func TestCompileOneLineDocstringHasNoFoldableBody(t *testing.T) {
	t.Parallel()
	g := compile(t, "def f():\n    '''One line.'''\n", "python")

	docs := findKind(g, KindDoc)
	require.Len(t, docs, 1)
	_, ok := docs[0].Body()
	assert.False(t, ok)
}

func TestCompileModuleDocstring(t *testing.T) {
	t.Parallel()
	src := "'''Module summary.\n" +
		"\n" +
		"More detail.\n" +
		"'''\n" +
		"x = 1\n"
	g := compile(t, src, "python")

	docs := findKind(g, KindDoc)
	require.Len(t, docs, 1)
	assert.Equal(t, 0, docs[0].ParentID)
	assert.Equal(t, 1, docs[0].Start)
	assert.Equal(t, 4, docs[0].End)
}

// =============================================================================
// Other bundled languages
// =============================================================================

func TestCompileGoFunctions(t *testing.T) {
	t.Parallel()
	src := "package main\n" +
		"\n" +
		"func add(a, b int) int {\n" +
		"\treturn a + b\n" +
		"}\n"
	g := compile(t, src, "go")

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	assert.Equal(t, 3, funcs[0].Start)
	assert.Equal(t, 5, funcs[0].End)
}

func TestCompileJavascriptExportWrapper(t *testing.T) {
	t.Parallel()
	src := "export function greet() {\n" +
		"  return 'hi';\n" +
		"}\n"
	g := compile(t, src, "javascript")

	funcs := findKind(g, KindFunction)
	require.Len(t, funcs, 1)
	// The export keyword line is the function's own start line here; the
	// wrapper rule must not push the start later or emit an extra scope.
	assert.Equal(t, 1, funcs[0].Start)
	assert.Equal(t, 3, funcs[0].End)
}

// =============================================================================
// Invariants
// =============================================================================

// TestCompileLaminarity verifies the producer contract the core assumes:
// any two scopes in a compiled graph are nested or disjoint.
func TestCompileLaminarity(t *testing.T) {
	t.Parallel()
	sources := map[string]string{
		"python": "'''Doc.'''\n" +
			"@deco\n" +
			"class A:\n" +
			"    '''Class doc.\n" +
			"    '''\n" +
			"    def m(self):\n" +
			"        for i in range(3):\n" +
			"            if i:\n" +
			"                yield i\n" +
			"    def n(self):\n" +
			"        try:\n" +
			"            return 1\n" +
			"        except ValueError:\n" +
			"            return 2\n" +
			"\n" +
			"def top():\n" +
			"    while True:\n" +
			"        break\n",
		"go": "package main\n" +
			"\n" +
			"type T struct{ n int }\n" +
			"\n" +
			"func (t T) M() int {\n" +
			"\tif t.n > 0 {\n" +
			"\t\treturn t.n\n" +
			"\t}\n" +
			"\tfor i := 0; i < 3; i++ {\n" +
			"\t\tt.n += i\n" +
			"\t}\n" +
			"\treturn 0\n" +
			"}\n",
	}
	for lang, src := range sources {
		g := compile(t, src, lang)
		ss := g.Scopes()
		for i := 0; i < len(ss); i++ {
			for j := i + 1; j < len(ss); j++ {
				a, b := ss[i], ss[j]
				disjoint := a.End < b.Start || b.End < a.Start
				aContainsB := a.Start <= b.Start && b.End <= a.End
				bContainsA := b.Start <= a.Start && a.End <= b.End
				assert.True(t, disjoint || aContainsB || bContainsA,
					"%s: scopes %d [%d,%d] and %d [%d,%d] partially overlap",
					lang, a.ID, a.Start, a.End, b.ID, b.Start, b.End)
			}
		}
	}
}

func TestCompileDeterminism(t *testing.T) {
	t.Parallel()
	src := "class A:\n    def m(self):\n        pass\n\ndef f():\n    pass\n"

	first := compile(t, src, "python")
	for i := 0; i < 3; i++ {
		assert.True(t, first.Equal(compile(t, src, "python")))
	}
}

func TestCompileScopesStayWithinRoot(t *testing.T) {
	t.Parallel()
	// No trailing newline: tree-sitter may report node ends past the last
	// addressable line, which must be clamped into the root's coverage.
	g := compile(t, "def f():\n    pass", "python")

	root := g.At(0)
	for _, s := range g.Scopes() {
		assert.GreaterOrEqual(t, s.Start, root.Start)
		assert.LessOrEqual(t, s.End, root.End)
	}
}

// =============================================================================
// Registry
// =============================================================================

func TestDefaultRegistryLanguages(t *testing.T) {
	t.Parallel()
	reg := Default()

	for _, lang := range []string{"python", "go", "javascript", "typescript", "rust", "java", "ruby", "c", "cpp", "php"} {
		spec, ok := reg.Lookup(lang)
		require.True(t, ok, "language %s", lang)
		assert.NotNil(t, spec.Grammar, "language %s", lang)
		assert.NotEmpty(t, spec.Rules.Policies, "language %s", lang)
	}

	_, ok := reg.Lookup("cobol")
	assert.False(t, ok)
}

func TestRegistriesAreIndependent(t *testing.T) {
	t.Parallel()
	a := Default()
	b := Default()

	a.Register("python", LanguageSpec{})

	spec, ok := b.Lookup("python")
	require.True(t, ok)
	assert.NotNil(t, spec.Grammar)
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	reg := Default()

	_, ok := reg.Lookup("Python")
	assert.True(t, ok)
	_, ok = reg.Lookup("GO")
	assert.True(t, ok)
}

func TestLanguageForFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"main.go", "go", true},
		{"src/app.PY", "python", true},
		{"component.tsx", "typescript", true},
		{"notes.txt", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		got, ok := LanguageForFile(tt.path)
		assert.Equal(t, tt.wantOK, ok, "path %s", tt.path)
		assert.Equal(t, tt.want, got, "path %s", tt.path)
	}
}
