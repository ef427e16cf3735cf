package producer

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".py":   "python",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".java": "java",
	".php":  "php",
	".rb":   "ruby",
}

// LanguageForFile returns the canonical language name for a file path
// based on its extension. Returns ("", false) for unknown extensions.
func LanguageForFile(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extToLanguage[ext]
	return lang, ok
}

// langToGrammar maps language names to tree-sitter Language objects.
// Lazily initialized on first use via sync.Once.
var (
	langToGrammar map[string]*sitter.Language
	grammarsOnce  sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		langToGrammar = map[string]*sitter.Language{
			"go":         golang.GetLanguage(),
			"typescript": ts.GetLanguage(),
			"javascript": javascript.GetLanguage(),
			"python":     python.GetLanguage(),
			"rust":       rust.GetLanguage(),
			"c":          c.GetLanguage(),
			"cpp":        cpp.GetLanguage(),
			"java":       java.GetLanguage(),
			"php":        php.GetLanguage(),
			"ruby":       ruby.GetLanguage(),
		}
	})
}

// Grammar returns the built-in tree-sitter grammar for a canonical
// language name. Returns (nil, false) if the language is not bundled.
func Grammar(lang string) (*sitter.Language, bool) {
	initGrammars()
	g, ok := langToGrammar[lang]
	return g, ok
}

func scopePolicy(kind string) NodePolicy {
	return NodePolicy{Scope: true, Kind: kind}
}

// builtinRules holds the structural rule tables shipped with pleat.
// Node type strings are raw tree-sitter grammar names.
var builtinRules = map[string]LanguageRules{
	"python": {
		Policies: map[string]NodePolicy{
			"class_definition":    scopePolicy(KindClass),
			"function_definition": scopePolicy(KindFunction),

			// Decorators lend their start line to the definition they wrap.
			"decorated_definition": {Wrapper: true},

			"if_statement":    scopePolicy(KindIf),
			"for_statement":   scopePolicy(KindFor),
			"while_statement": scopePolicy(KindWhile),
			"with_statement":  scopePolicy(KindWith),
			"try_statement":   scopePolicy(KindTry),
			"match_statement": scopePolicy(KindMatch),

			"elif_clause":    scopePolicy(KindElif),
			"else_clause":    scopePolicy(KindElse),
			"except_clause":  scopePolicy(KindExcept),
			"finally_clause": scopePolicy(KindFinally),
			"case_clause":    scopePolicy(KindCase),
		},
		Wrappers: []WrapperRule{
			{
				WrapperType: "decorated_definition",
				TargetTypes: []string{"class_definition", "function_definition"},
			},
		},
		Doc: &DocRule{
			StatementType: "expression_statement",
			ValueType:     "string",
			HeaderLines:   2, // opening quotes line plus the summary line
		},
	},
	"go": {
		Policies: map[string]NodePolicy{
			"function_declaration":        scopePolicy(KindFunction),
			"method_declaration":          scopePolicy(KindMethod),
			"type_declaration":            scopePolicy(KindType),
			"if_statement":                scopePolicy(KindIf),
			"for_statement":               scopePolicy(KindFor),
			"select_statement":            scopePolicy(KindSwitch),
			"type_switch_statement":       scopePolicy(KindSwitch),
			"expression_switch_statement": scopePolicy(KindSwitch),
		},
	},
	"javascript": {
		Policies: map[string]NodePolicy{
			"class_declaration":    scopePolicy(KindClass),
			"function_declaration": scopePolicy(KindFunction),
			"method_definition":    scopePolicy(KindMethod),
			"if_statement":         scopePolicy(KindIf),
			"for_statement":        scopePolicy(KindFor),
			"for_in_statement":     scopePolicy(KindFor),
			"while_statement":      scopePolicy(KindWhile),
			"try_statement":        scopePolicy(KindTry),
			"switch_statement":     scopePolicy(KindSwitch),

			"export_statement": {Wrapper: true},
		},
		Wrappers: []WrapperRule{
			{
				WrapperType: "export_statement",
				TargetTypes: []string{"class_declaration", "function_declaration"},
			},
		},
	},
	"typescript": {
		Policies: map[string]NodePolicy{
			"class_declaration":     scopePolicy(KindClass),
			"interface_declaration": scopePolicy(KindInterface),
			"function_declaration":  scopePolicy(KindFunction),
			"method_definition":     scopePolicy(KindMethod),
			"if_statement":          scopePolicy(KindIf),
			"for_statement":         scopePolicy(KindFor),
			"for_in_statement":      scopePolicy(KindFor),
			"while_statement":       scopePolicy(KindWhile),
			"try_statement":         scopePolicy(KindTry),
			"switch_statement":      scopePolicy(KindSwitch),

			"export_statement": {Wrapper: true},
		},
		Wrappers: []WrapperRule{
			{
				WrapperType: "export_statement",
				TargetTypes: []string{"class_declaration", "interface_declaration", "function_declaration"},
			},
		},
	},
	"rust": {
		Policies: map[string]NodePolicy{
			"function_item": scopePolicy(KindFunction),
			"struct_item":   scopePolicy(KindStruct),
			"enum_item":     scopePolicy(KindType),
			"trait_item":    scopePolicy(KindInterface),
			"impl_item":     scopePolicy(KindImpl),
			"mod_item":      scopePolicy(KindNamespace),
		},
	},
	"java": {
		Policies: map[string]NodePolicy{
			"class_declaration":       scopePolicy(KindClass),
			"interface_declaration":   scopePolicy(KindInterface),
			"enum_declaration":        scopePolicy(KindType),
			"method_declaration":      scopePolicy(KindMethod),
			"constructor_declaration": scopePolicy(KindMethod),
			"if_statement":            scopePolicy(KindIf),
			"for_statement":           scopePolicy(KindFor),
			"while_statement":         scopePolicy(KindWhile),
			"try_statement":           scopePolicy(KindTry),
			"switch_expression":       scopePolicy(KindSwitch),
		},
	},
	"ruby": {
		Policies: map[string]NodePolicy{
			"class":            scopePolicy(KindClass),
			"module":           scopePolicy(KindNamespace),
			"method":           scopePolicy(KindMethod),
			"singleton_method": scopePolicy(KindMethod),
			"if":               scopePolicy(KindIf),
			"while":            scopePolicy(KindWhile),
			"case":             scopePolicy(KindMatch),
			"begin":            scopePolicy(KindTry),
		},
	},
	"c": {
		Policies: map[string]NodePolicy{
			"function_definition": scopePolicy(KindFunction),
			"struct_specifier":    scopePolicy(KindStruct),
			"enum_specifier":      scopePolicy(KindType),
			"if_statement":        scopePolicy(KindIf),
			"for_statement":       scopePolicy(KindFor),
			"while_statement":     scopePolicy(KindWhile),
			"switch_statement":    scopePolicy(KindSwitch),
		},
	},
	"cpp": {
		Policies: map[string]NodePolicy{
			"function_definition":  scopePolicy(KindFunction),
			"class_specifier":      scopePolicy(KindClass),
			"struct_specifier":     scopePolicy(KindStruct),
			"namespace_definition": scopePolicy(KindNamespace),
			"if_statement":         scopePolicy(KindIf),
			"for_statement":        scopePolicy(KindFor),
			"while_statement":      scopePolicy(KindWhile),
			"switch_statement":     scopePolicy(KindSwitch),
		},
	},
	"php": {
		Policies: map[string]NodePolicy{
			"class_declaration":     scopePolicy(KindClass),
			"interface_declaration": scopePolicy(KindInterface),
			"function_definition":   scopePolicy(KindFunction),
			"method_declaration":    scopePolicy(KindMethod),
			"if_statement":          scopePolicy(KindIf),
			"foreach_statement":     scopePolicy(KindFor),
			"for_statement":         scopePolicy(KindFor),
			"while_statement":       scopePolicy(KindWhile),
			"try_statement":         scopePolicy(KindTry),
			"switch_statement":      scopePolicy(KindSwitch),
		},
	},
}
