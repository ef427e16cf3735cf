package producer

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOML overlay format for rule tables:
//
//	[language.python]
//	grammar = "python"
//
//	[language.python.scopes.function_definition]
//	kind = "function"
//
//	[language.python.scopes.class_definition]
//	kind = "class"
//	header_lines = 1
//
//	[[language.python.wrappers]]
//	wrapper = "decorated_definition"
//	targets = ["class_definition", "function_definition"]
//
//	[language.python.doc]
//	statement = "expression_statement"
//	value = "string"
//	header_lines = 2
//
// Grammars cannot be defined in TOML; each table borrows a bundled grammar
// by name (defaulting to the language's own name).

type rulesFile struct {
	Language map[string]rulesTable `toml:"language"`
}

type rulesTable struct {
	Grammar  string                `toml:"grammar"`
	Scopes   map[string]scopeEntry `toml:"scopes"`
	Wrappers []wrapperEntry        `toml:"wrappers"`
	Doc      *docEntry             `toml:"doc"`
}

type scopeEntry struct {
	Kind        string `toml:"kind"`
	HeaderLines int    `toml:"header_lines"`
}

type wrapperEntry struct {
	Wrapper string   `toml:"wrapper"`
	Targets []string `toml:"targets"`
}

type docEntry struct {
	Statement   string `toml:"statement"`
	Value       string `toml:"value"`
	HeaderLines int    `toml:"header_lines"`
}

// LoadRulesFile parses a TOML rule overlay and registers its language
// tables into reg, replacing any previous spec for the same name.
func LoadRulesFile(reg *Registry, path string) error {
	var rf rulesFile
	if _, err := toml.DecodeFile(path, &rf); err != nil {
		return fmt.Errorf("producer: parse rules %s: %w", path, err)
	}
	return registerRules(reg, rf, path)
}

// LoadRules is LoadRulesFile for in-memory TOML text.
func LoadRules(reg *Registry, data string) error {
	var rf rulesFile
	if _, err := toml.Decode(data, &rf); err != nil {
		return fmt.Errorf("producer: parse rules: %w", err)
	}
	return registerRules(reg, rf, "<inline>")
}

func registerRules(reg *Registry, rf rulesFile, label string) error {
	for name, tbl := range rf.Language {
		grammarName := tbl.Grammar
		if grammarName == "" {
			grammarName = name
		}
		grammar, ok := Grammar(grammarName)
		if !ok {
			return fmt.Errorf("producer: rules %s: unknown grammar %q for language %q", label, grammarName, name)
		}

		rules := LanguageRules{Policies: make(map[string]NodePolicy, len(tbl.Scopes))}
		for nodeType, e := range tbl.Scopes {
			rules.Policies[nodeType] = NodePolicy{Scope: true, Kind: e.Kind, HeaderLines: e.HeaderLines}
		}
		for _, w := range tbl.Wrappers {
			if w.Wrapper == "" || len(w.Targets) == 0 {
				return fmt.Errorf("producer: rules %s: wrapper rule for %q needs wrapper and targets", label, name)
			}
			rules.Policies[w.Wrapper] = NodePolicy{Wrapper: true}
			rules.Wrappers = append(rules.Wrappers, WrapperRule{WrapperType: w.Wrapper, TargetTypes: w.Targets})
		}
		if d := tbl.Doc; d != nil {
			rules.Doc = &DocRule{StatementType: d.Statement, ValueType: d.Value, HeaderLines: d.HeaderLines}
		}

		reg.Register(name, LanguageSpec{Grammar: grammar, Rules: rules})
	}
	return nil
}
