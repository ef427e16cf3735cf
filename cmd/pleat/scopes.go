package main

import (
	"context"

	"github.com/spf13/cobra"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [file]",
	Short: "Dump the scope graph for a source file",
	Long:  "Compiles the source and prints every scope in canonical order: parents before descendants, siblings by start line. Reads stdin when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScopes,
}

func runScopes(cmd *cobra.Command, args []string) error {
	source, file, err := readSource(args)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(file)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	g, _ := engine.Graph(context.Background(), source, lang)

	out := scopesOutput{File: file, Language: lang}
	for _, s := range g.Scopes() {
		out.Scopes = append(out.Scopes, cliScope{
			ID:          s.ID,
			ParentID:    s.ParentID,
			Kind:        s.Kind,
			Start:       s.Start,
			End:         s.End,
			HeaderLines: s.HeaderLines,
		})
	}
	return outputScopes(out)
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the engine can compile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		var out []cliLanguage
		for _, name := range engine.Languages() {
			spec, _ := engine.Registry().Lookup(name)
			out = append(out, cliLanguage{
				Name:     name,
				Rules:    len(spec.Rules.Policies),
				Wrappers: len(spec.Rules.Wrappers),
				Doc:      spec.Rules.Doc != nil,
			})
		}
		return outputLanguages(out)
	},
}
