package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/pleat"
)

var (
	flagFormat   string
	flagLanguage string
	flagRules    []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pleat",
	Short:         "Structural fold ranges for source code",
	Long:          "Pleat parses source files with tree-sitter, builds a laminar scope graph, and answers cursor-relative fold queries with editor-ready line ranges.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagLanguage, "language", "", "language override (default: inferred from file extension)")
	rootCmd.PersistentFlags().StringArrayVar(&flagRules, "rules", nil, "TOML rule overlay file (repeatable, applied in order)")

	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(scanCmd)
}

// newEngine builds the engine shared by all commands, layering any --rules
// overlays onto the bundled registry.
func newEngine() (*pleat.Engine, error) {
	var opts []pleat.Option
	for _, path := range flagRules {
		opts = append(opts, pleat.WithRulesFile(path))
	}
	e, err := pleat.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return e, nil
}

// readSource loads the file argument, or stdin when the argument is absent
// or "-". Returns the source text and a display name.
func readSource(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

// resolveLanguage picks the language for a source: the --language flag wins,
// otherwise the file extension decides.
func resolveLanguage(file string) (string, error) {
	if flagLanguage != "" {
		return flagLanguage, nil
	}
	lang, ok := pleat.LanguageForFile(file)
	if !ok {
		return "", fmt.Errorf("cannot infer language for %s: pass --language", file)
	}
	return lang, nil
}
