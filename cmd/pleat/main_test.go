package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/pleat"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
	assert.Error(t, validateFormat(""))
}

func TestSplitKinds(t *testing.T) {
	t.Parallel()
	assert.Nil(t, splitKinds(""))
	assert.Equal(t, []string{"function"}, splitKinds("function"))
	assert.Equal(t, []string{"function", "class"}, splitKinds("function, class"))
	assert.Equal(t, []string{"function"}, splitKinds("function,,"))
}

func TestToCLIRanges(t *testing.T) {
	t.Parallel()
	got := toCLIRanges([]pleat.Range{{Start: 2, End: 5}, {Start: 8, End: 9}})
	assert.Equal(t, []cliRange{{Start: 2, End: 5}, {Start: 8, End: 9}}, got)
	assert.Empty(t, toCLIRanges(nil))
}

func TestFoldJSONIsPairArray(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(toPairs([]cliRange{{Start: 2, End: 3}, {Start: 5, End: 8}}))
	require.NoError(t, err)
	assert.Equal(t, "[[2,3],[5,8]]", string(data))

	data, err = json.Marshal(toPairs(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestResolveLanguage(t *testing.T) {
	lang, err := resolveLanguage("main.py")
	require.NoError(t, err)
	assert.Equal(t, "python", lang)

	_, err = resolveLanguage("notes.txt")
	require.Error(t, err)

	flagLanguage = "rust"
	defer func() { flagLanguage = "" }()
	lang, err = resolveLanguage("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "rust", lang)
}

func TestListSourceFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("main.py", "x = 1\n")
	write("sub/app.go", "package app\n")
	write("README.md", "docs\n")
	write("node_modules/dep/index.js", "var x;\n")
	write(".hidden/secret.py", "y = 2\n")

	paths, err := listSourceFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Contains(t, paths, filepath.Join(dir, "main.py"))
	assert.Contains(t, paths, filepath.Join(dir, "sub", "app.go"))
}

func TestNewEngineWithRulesFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	overlay := "[language.pyslim]\n" +
		"grammar = \"python\"\n" +
		"\n" +
		"[language.pyslim.scopes.function_definition]\n" +
		"kind = \"function\"\n"
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	flagRules = []string{path}
	defer func() { flagRules = nil }()

	e, err := newEngine()
	require.NoError(t, err)
	assert.Contains(t, e.Languages(), "pyslim")
}
