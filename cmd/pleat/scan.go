package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jward/pleat"
)

var flagWorkers int

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Compile every supported file under a directory and summarize",
	Long:  "Walks a directory tree, compiles each file with a recognized extension, and prints per-language scope statistics. Files compile independently; one file never affects another's scopes.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel compile workers (default: GOMAXPROCS)")
}

// skipDirs lists directory names excluded from scanning.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

type langStat struct {
	Files  int
	Lines  int
	Scopes int
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path %q: %w", root, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", abs)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	paths, err := listSourceFiles(abs)
	if err != nil {
		return err
	}

	workers := flagWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu    sync.Mutex
		stats = make(map[string]*langStat)
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			lang, _ := pleat.LanguageForFile(path)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			source := string(data)
			graph, _ := engine.Graph(ctx, source, lang)

			mu.Lock()
			st := stats[lang]
			if st == nil {
				st = &langStat{}
				stats[lang] = st
			}
			st.Files++
			st.Lines += pleat.TotalLines(source)
			st.Scopes += graph.Len()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := scanOutput{Root: abs}
	langs := make([]string, 0, len(stats))
	for lang := range stats {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		st := stats[lang]
		out.Languages = append(out.Languages, scanLang{
			Language: lang,
			Files:    st.Files,
			Lines:    st.Lines,
			Scopes:   st.Scopes,
		})
		out.TotalFiles += st.Files
		out.TotalScopes += st.Scopes
	}

	if err := outputScan(out); err != nil {
		return err
	}

	elapsed := color.New(color.FgGreen).Sprint(time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Scanned %d files in %s\n", out.TotalFiles, elapsed)
	return nil
}

// listSourceFiles walks root and returns every file with a supported
// extension, skipping hidden directories and the usual dependency dirs.
func listSourceFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := pleat.LanguageForFile(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}
