package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/pleat"
)

var (
	flagCursor      int
	flagAxis        string
	flagKinds       string
	flagLevel       int
	flagMaxItems    int
	flagIncludeRoot bool
	flagIncludeSelf bool
)

var foldCmd = &cobra.Command{
	Use:   "fold [file]",
	Short: "Compute fold ranges for a cursor position",
	Long:  "Resolves the cursor line to its deepest scope, walks the requested axis, and prints the normalized fold ranges. Reads stdin when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFold,
}

func init() {
	foldCmd.Flags().IntVar(&flagCursor, "cursor", 0, "1-based cursor line (required)")
	foldCmd.Flags().StringVar(&flagAxis, "axis", "self", "relation axis to walk")
	foldCmd.Flags().StringVar(&flagKinds, "kinds", "", "comma-separated kind filter (e.g. function,class)")
	foldCmd.Flags().IntVar(&flagLevel, "level", 0, "ascend this many parents before walking the axis")
	foldCmd.Flags().IntVar(&flagMaxItems, "max-items", 50, "cap on returned ranges (0 = unlimited)")
	foldCmd.Flags().BoolVar(&flagIncludeRoot, "include-root", false, "let the ancestors axis include the module root")
	foldCmd.Flags().BoolVar(&flagIncludeSelf, "include-self", false, "let the descendants axis include the target scope")
	foldCmd.MarkFlagRequired("cursor")
}

func runFold(cmd *cobra.Command, args []string) error {
	source, file, err := readSource(args)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(file)
	if err != nil {
		return err
	}

	axis := pleat.Axis(flagAxis)
	if !pleat.ValidAxis(axis) {
		return fmt.Errorf("unknown axis %q: valid axes are %s", flagAxis, axisNames())
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	ranges := engine.FoldRanges(context.Background(), source, lang, pleat.Query{
		Cursor:      flagCursor,
		Axis:        axis,
		Kinds:       splitKinds(flagKinds),
		Level:       flagLevel,
		MaxItems:    flagMaxItems,
		IncludeRoot: flagIncludeRoot,
		IncludeSelf: flagIncludeSelf,
	})

	return outputFold(toCLIRanges(ranges))
}

func splitKinds(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func axisNames() string {
	axes := pleat.Axes()
	names := make([]string, len(axes))
	for i, a := range axes {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
