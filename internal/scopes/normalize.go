package scopes

import "sort"

// Range is a 1-based inclusive line span. A useful fold range always has
// Start < End: folding a single line hides nothing.
type Range struct {
	Start int
	End   int
}

// Normalize is the final authority on output shape, whatever upstream
// produced. In order, it drops pairs with start >= end, clamps into
// [1, maxLine] when maxLine > 0 (re-dropping spans the clamp collapsed),
// sorts by (start, end), and merges overlapping or line-adjacent spans
// into maximal intervals — which also removes duplicates.
//
// Normalize is total and idempotent: it never fails, and applying it to
// its own output changes nothing.
func Normalize(ranges []Range, maxLine int) []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start >= r.End {
			continue
		}
		if maxLine > 0 {
			r.Start = clampLine(r.Start, maxLine)
			r.End = clampLine(r.End, maxLine)
			if r.Start >= r.End {
				continue
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	merged := out[:0]
	for _, r := range out {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End+1 {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func clampLine(v, maxLine int) int {
	if v < 1 {
		return 1
	}
	if v > maxLine {
		return maxLine
	}
	return v
}
