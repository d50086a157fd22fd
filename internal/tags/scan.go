// Package tags collects tagged comments (TODO, FIXME, etc.) from project
// files for review in a single summary location.
package tags

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Vocabulary is the fixed set of recognized tag keywords.
var Vocabulary = []string{"DEBUG", "FIXME", "FYI", "HACK", "NOTE", "PLANNED", "REVIEW", "TBD", "TODO"}

const (
	// skipDirective disables scanning for the rest of a file when it
	// appears within the first skipWindow lines.
	skipDirective = ":skip_tags:"
	skipWindow    = 4
)

// Comment is a single tagged comment with its 1-based line number.
type Comment struct {
	Line int
	Tag  string
	Text string
}

// FileTags holds the tagged comments found in one file. Files with no
// matches never get a FileTags entry.
type FileTags struct {
	Path     string
	Comments []Comment
}

// CompileRegex builds the tag-matching expression for the given keywords.
// A tag must be preceded by whitespace or an open paren and followed by a
// colon; the trailing text is captured as the comment body.
func CompileRegex(keywords []string) *regexp.Regexp {
	return regexp.MustCompile(`((\s|\()(?P<tag>` + strings.Join(keywords, "|") + `)(:[^\r\n]))(?P<text>.+)`)
}

// DefaultRegex matches the full Vocabulary.
var DefaultRegex = CompileRegex(Vocabulary)

// SearchLines scans lines of text for tagged comments. Scanning stops early
// when the skip directive appears within the first lines of the file;
// matches found before the directive are kept.
func SearchLines(lines []string, re *regexp.Regexp) []Comment {
	tagIdx := re.SubexpIndex("tag")
	textIdx := re.SubexpIndex("text")

	var comments []Comment
	for i, line := range lines {
		if i < skipWindow && strings.Contains(line, skipDirective) {
			break
		}
		if m := re.FindStringSubmatch(line); m != nil {
			comments = append(comments, Comment{Line: i + 1, Tag: m[tagIdx], Text: m[textIdx]})
		}
	}
	return comments
}

// SearchFiles collects tagged comments from each file in paths, in order.
// A file that is not valid UTF-8 is skipped with a warning rather than
// aborting the whole scan.
func SearchFiles(logger *log.Logger, paths []string, re *regexp.Regexp) ([]FileTags, error) {
	var matches []FileTags
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			logger.Warn("Could not parse file, skipping", "path", path)
			continue
		}

		comments := SearchLines(strings.Split(string(data), "\n"), re)
		if len(comments) > 0 {
			matches = append(matches, FileTags{Path: path, Comments: comments})
		}
	}
	return matches, nil
}
