package tags

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatReport pretty-formats tagged comments grouped by file and ordered by
// file path. Each file gets a relative-path header and one line per comment;
// the trailer summarizes per-tag counts in first-seen order.
func FormatReport(baseDir string, collections []FileTags) string {
	sorted := make([]FileTags, len(collections))
	copy(sorted, collections)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var b strings.Builder
	counts := make(map[string]int)
	var seen []string

	for _, ft := range sorted {
		b.WriteString(relPath(baseDir, ft.Path) + "\n")
		for _, c := range ft.Comments {
			fmt.Fprintf(&b, "    line %3d %7s: %s\n", c.Line, c.Tag, c.Text)
			if _, ok := counts[c.Tag]; !ok {
				seen = append(seen, c.Tag)
			}
			counts[c.Tag]++
		}
		b.WriteString("\n")
	}

	if len(seen) > 0 {
		parts := make([]string, 0, len(seen))
		for _, tag := range seen {
			parts = append(parts, fmt.Sprintf("%s (%d)", tag, counts[tag]))
		}
		fmt.Fprintf(&b, "Found tagged comments for %s\n", strings.Join(parts, ",  "))
	}
	return b.String()
}

// Counts folds the per-tag totals across all collections, returning the tags
// in first-seen order alongside the count map.
func Counts(collections []FileTags) ([]string, map[string]int) {
	counts := make(map[string]int)
	var seen []string
	for _, ft := range collections {
		for _, c := range ft.Comments {
			if _, ok := counts[c.Tag]; !ok {
				seen = append(seen, c.Tag)
			}
			counts[c.Tag]++
		}
	}
	return seen, counts
}

func relPath(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
