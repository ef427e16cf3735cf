package scopes

import "strings"

// TotalLines reports how many addressable lines source has. A line exists
// if it appears when splitting on "\n", except that a single trailing
// newline does not create an extra blank line. Empty source still has one
// addressable line, matching the single-root fallback graph.
func TotalLines(source string) int {
	source = strings.TrimSuffix(source, "\n")
	return strings.Count(source, "\n") + 1
}
