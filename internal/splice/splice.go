// Package splice replaces marked regions of a line-oriented text document.
//
// A region is bracketed by HTML-comment-style markers:
//
//	<!-- KEY -->
//	...old content...
//	<!-- /KEY -->
//
// Splice rewrites everything between the markers with caller-supplied
// replacement lines and passes all other lines through verbatim.
package splice

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingKeyError reports an opener marker whose key has no entry in the
// replacement map. This indicates a caller/config mismatch and aborts the
// splice rather than emitting blank content.
type MissingKeyError struct {
	Key  string
	Line int // 1-based line number of the opener
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("line %d: no replacement content for marker key %q", e.Line, e.Key)
}

// RegionError reports malformed marker pairing: a closer without an opener,
// an opener inside an open region, a closer whose key does not match the
// open region, or a region left unterminated at end of document.
type RegionError struct {
	Key  string
	Line int // 1-based, 0 for end-of-document errors
	Msg  string
}

func (e *RegionError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("marker region %q not closed before end of document", e.Key)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// splice is a two-state machine: outside a region every line passes through
// unchanged, inside a region original lines are dropped until the closer.
type state int

const (
	statePassthrough state = iota
	stateInRegion
)

// Splice scans lines for marker pairs matching pattern and replaces each
// region's content with the replacement lines for the captured key. The
// pattern must capture the key in its first group for both the opener and
// closer form (the closing slash sits outside the group, as in
// `\s*<!-- /?(CODE:.*) -->`).
//
// A line is a marker only when the pattern matches at the start of the
// line. A marker merely mentioned mid-line, as in prose documenting the
// marker syntax, is ordinary text and passes through.
//
// The replacement content is emitted immediately after the opener, padded
// with one blank line on each side. Output length generally differs from
// input length.
func Splice(lines []string, pattern *regexp.Regexp, replacements map[string][]string) ([]string, error) {
	out := make([]string, 0, len(lines))
	st := statePassthrough
	openKey := ""

	for i, line := range lines {
		key, marker := matchMarker(pattern, line)
		switch {
		case marker && isCloser(line):
			if st != stateInRegion {
				return nil, &RegionError{Key: key, Line: i + 1, Msg: fmt.Sprintf("closer %q without matching opener", key)}
			}
			if key != openKey {
				return nil, &RegionError{Key: key, Line: i + 1, Msg: fmt.Sprintf("closer %q does not match open region %q", key, openKey)}
			}
			out = append(out, line)
			st = statePassthrough
			openKey = ""
		case marker:
			if st == stateInRegion {
				return nil, &RegionError{Key: key, Line: i + 1, Msg: fmt.Sprintf("opener %q inside open region %q", key, openKey)}
			}
			repl, ok := replacements[key]
			if !ok {
				return nil, &MissingKeyError{Key: key, Line: i + 1}
			}
			out = append(out, line, "")
			out = append(out, repl...)
			out = append(out, "")
			st = stateInRegion
			openKey = key
		case st == stateInRegion:
			// Old region content, replaced.
		default:
			out = append(out, line)
		}
	}

	if st == stateInRegion {
		return nil, &RegionError{Key: openKey}
	}
	return out, nil
}

// matchMarker matches the pattern against the start of the line and returns
// the captured key. A match beginning past the first character is not a
// marker.
func matchMarker(pattern *regexp.Regexp, line string) (string, bool) {
	idx := pattern.FindStringSubmatchIndex(line)
	if idx == nil || idx[0] != 0 || idx[2] < 0 {
		return "", false
	}
	return line[idx[2]:idx[3]], true
}

// isCloser reports whether a marker line is the closing form.
func isCloser(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "<!-- /")
}
