package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jward/pleat"
)

// CLI output shapes. Core types carry no serialization concerns; the JSON
// contract lives here.

type cliRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type cliScope struct {
	ID          int    `json:"id"`
	ParentID    int    `json:"parent_id"`
	Kind        string `json:"kind"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	HeaderLines int    `json:"header_lines"`
}

type scopesOutput struct {
	File     string     `json:"file"`
	Language string     `json:"language"`
	Scopes   []cliScope `json:"scopes"`
}

type scanLang struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	Lines    int    `json:"lines"`
	Scopes   int    `json:"scopes"`
}

type scanOutput struct {
	Root        string     `json:"root"`
	Languages   []scanLang `json:"languages"`
	TotalFiles  int        `json:"total_files"`
	TotalScopes int        `json:"total_scopes"`
}

func toCLIRanges(ranges []pleat.Range) []cliRange {
	out := make([]cliRange, len(ranges))
	for i, r := range ranges {
		out[i] = cliRange{Start: r.Start, End: r.End}
	}
	return out
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputFold prints fold results. The JSON contract is a bare array of
// [start,end] pairs, not an envelope object.
func outputFold(ranges []cliRange) error {
	if flagFormat == "text" {
		for _, r := range ranges {
			fmt.Printf("%d-%d\n", r.Start, r.End)
		}
		return nil
	}
	return outputJSON(toPairs(ranges))
}

// toPairs flattens ranges into [start,end] pairs. Never nil, so an empty
// result encodes as [].
func toPairs(ranges []cliRange) [][2]int {
	pairs := make([][2]int, len(ranges))
	for i, r := range ranges {
		pairs[i] = [2]int{r.Start, r.End}
	}
	return pairs
}

func outputScopes(out scopesOutput) error {
	if flagFormat == "text" {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Parent", "Kind", "Start", "End", "Header"})
		table.SetBorder(false)
		for _, s := range out.Scopes {
			parent := strconv.Itoa(s.ParentID)
			if s.ParentID == pleat.NoParent {
				parent = "-"
			}
			table.Append([]string{
				strconv.Itoa(s.ID),
				parent,
				s.Kind,
				strconv.Itoa(s.Start),
				strconv.Itoa(s.End),
				strconv.Itoa(s.HeaderLines),
			})
		}
		table.Render()
		return nil
	}
	return outputJSON(out)
}

type cliLanguage struct {
	Name     string `json:"name"`
	Rules    int    `json:"rules"`
	Wrappers int    `json:"wrappers"`
	Doc      bool   `json:"doc"`
}

func outputLanguages(langs []cliLanguage) error {
	if flagFormat == "text" {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Language", "Rules", "Wrappers", "Doc"})
		table.SetBorder(false)
		for _, l := range langs {
			doc := ""
			if l.Doc {
				doc = "yes"
			}
			table.Append([]string{l.Name, strconv.Itoa(l.Rules), strconv.Itoa(l.Wrappers), doc})
		}
		table.Render()
		return nil
	}
	return outputJSON(map[string][]cliLanguage{"languages": langs})
}

func outputScan(out scanOutput) error {
	if flagFormat == "text" {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Language", "Files", "Lines", "Scopes"})
		table.SetBorder(false)
		for _, l := range out.Languages {
			table.Append([]string{
				l.Language,
				strconv.Itoa(l.Files),
				strconv.Itoa(l.Lines),
				strconv.Itoa(l.Scopes),
			})
		}
		table.Render()
		return nil
	}
	return outputJSON(out)
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
