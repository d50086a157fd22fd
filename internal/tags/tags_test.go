package tags

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/logging"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		ProjectRoot:    root,
		TagSummaryFile: "TAG_SUMMARY.md",
		DocOutputDir:   "releases/docs",
		TestOutputDir:  "releases/tests",
	}
}

func TestSearchLinesBasic(t *testing.T) {
	lines := []string{
		"def fn():",
		"    pass",
		"",
		"",
		"# TODO: fix this",
	}

	got := SearchLines(lines, DefaultRegex)
	if len(got) != 1 {
		t.Fatalf("SearchLines: got %d comments, want 1", len(got))
	}
	want := Comment{Line: 5, Tag: "TODO", Text: "fix this"}
	if got[0] != want {
		t.Errorf("SearchLines: got %+v, want %+v", got[0], want)
	}
}

func TestSearchLinesVocabulary(t *testing.T) {
	tests := []struct {
		name string
		line string
		tag  string
		text string
	}{
		{"hash comment", "# FIXME: broken", "FIXME", "broken"},
		{"inline paren", "value = 1  # (HACK: workaround)", "HACK", "workaround)"},
		{"markdown note", "content NOTE: remember this", "NOTE", "remember this"},
		{"planned", "\t# PLANNED: later", "PLANNED", "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchLines([]string{tt.line}, DefaultRegex)
			if len(got) != 1 {
				t.Fatalf("SearchLines(%q): got %d comments, want 1", tt.line, len(got))
			}
			if got[0].Tag != tt.tag || got[0].Text != tt.text {
				t.Errorf("SearchLines(%q): got tag %q text %q, want %q %q",
					tt.line, got[0].Tag, got[0].Text, tt.tag, tt.text)
			}
		})
	}
}

func TestSearchLinesNonMatches(t *testing.T) {
	lines := []string{
		"TODO without colon",
		"xTODO: joined to a word",
		"# TODO:",
	}
	if got := SearchLines(lines, DefaultRegex); len(got) != 0 {
		t.Errorf("SearchLines: got %d comments, want 0: %+v", len(got), got)
	}
}

func TestSkipDirectiveFirstLine(t *testing.T) {
	lines := []string{
		"# :skip_tags:",
		"# TODO: never reported",
		"# FIXME: never reported",
	}
	if got := SearchLines(lines, DefaultRegex); len(got) != 0 {
		t.Errorf("SearchLines: got %d comments, want 0", len(got))
	}
}

func TestSkipDirectiveKeepsEarlierMatches(t *testing.T) {
	lines := []string{
		"# TODO: before the directive",
		"# :skip_tags:",
		"# FIXME: after the directive",
	}
	got := SearchLines(lines, DefaultRegex)
	if len(got) != 1 || got[0].Tag != "TODO" {
		t.Errorf("SearchLines: got %+v, want one TODO", got)
	}
}

func TestSkipDirectiveOutsideWindow(t *testing.T) {
	lines := []string{
		"line one",
		"line two",
		"line three",
		"line four",
		"# :skip_tags:",
		"# TODO: still reported",
	}
	got := SearchLines(lines, DefaultRegex)
	if len(got) != 1 || got[0].Line != 6 {
		t.Errorf("SearchLines: got %+v, want one match at line 6", got)
	}
}

func TestSearchFilesSkipsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	bad := filepath.Join(dir, "bad.py")
	if err := os.WriteFile(good, []byte("# TODO: ok\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 0x00, 0x41}, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := SearchFiles(logging.NewTestLogger(io.Discard), []string{bad, good}, DefaultRegex)
	if err != nil {
		t.Fatalf("SearchFiles: %v", err)
	}
	if len(got) != 1 || got[0].Path != good {
		t.Errorf("SearchFiles: got %+v, want only %s", got, good)
	}
}

func TestFormatReportGrouping(t *testing.T) {
	collections := []FileTags{
		{Path: "/proj/b.py", Comments: []Comment{{Line: 9, Tag: "TODO", Text: "second file"}}},
		{Path: "/proj/a.py", Comments: []Comment{
			{Line: 2, Tag: "FIXME", Text: "first"},
			{Line: 14, Tag: "TODO", Text: "later"},
		}},
	}

	report := FormatReport("/proj", collections)

	// Files sorted by path, a.py first.
	aIdx := strings.Index(report, "a.py")
	bIdx := strings.Index(report, "b.py")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Errorf("FormatReport: files not sorted by path:\n%s", report)
	}
	if !strings.Contains(report, "    line   2   FIXME: first") {
		t.Errorf("FormatReport: missing aligned comment line:\n%s", report)
	}
	if !strings.Contains(report, "Found tagged comments for FIXME (1),  TODO (2)") {
		t.Errorf("FormatReport: wrong summary trailer:\n%s", report)
	}
}

func TestFormatReportEmpty(t *testing.T) {
	if report := FormatReport("/proj", nil); strings.TrimSpace(report) != "" {
		t.Errorf("FormatReport: got %q, want empty", report)
	}
}

func TestCountsFirstSeenOrder(t *testing.T) {
	collections := []FileTags{
		{Path: "a", Comments: []Comment{{Line: 1, Tag: "NOTE", Text: "x"}, {Line: 2, Tag: "TODO", Text: "y"}}},
		{Path: "b", Comments: []Comment{{Line: 1, Tag: "NOTE", Text: "z"}}},
	}
	order, counts := Counts(collections)
	if len(order) != 2 || order[0] != "NOTE" || order[1] != "TODO" {
		t.Errorf("Counts: order %v", order)
	}
	if counts["NOTE"] != 2 || counts["TODO"] != 1 {
		t.Errorf("Counts: counts %v", counts)
	}
}

func TestFindFilesPolicy(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("README.md", "top level")
	write("TAG_SUMMARY.md", "excluded by name")
	write("main.go", "unsupported suffix")
	write("pkg/mod.py", "nested")
	write("pkg/deep/sub.md", "deeply nested")
	write(".git/config.py", "dot dir excluded")
	write("releases/docs/index.md", "output dir excluded")

	cfg := testConfig(dir)
	got, err := FindFiles(logging.NewTestLogger(io.Discard), cfg)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	want := map[string]bool{
		filepath.Join(dir, "README.md"):             true,
		filepath.Join(dir, "pkg", "mod.py"):         true,
		filepath.Join(dir, "pkg", "deep", "sub.md"): true,
	}
	if len(got) != len(want) {
		t.Fatalf("FindFiles: got %v, want %d files", got, len(want))
	}
	for _, path := range got {
		if !want[path] {
			t.Errorf("FindFiles: unexpected path %s", path)
		}
	}
}

func TestWriteSummaryCreatesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("# TODO: write docs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	if err := WriteSummary(logging.NewTestLogger(io.Discard), cfg); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	data, err := os.ReadFile(cfg.TagSummaryPath())
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "# Task Summary\n\nAuto-Generated by chore\n\n```log\n") {
		t.Errorf("summary header wrong:\n%s", text)
	}
	if !strings.HasSuffix(text, "```\n") {
		t.Errorf("summary footer wrong:\n%s", text)
	}
	if !strings.Contains(text, "line   1    TODO: write docs") {
		t.Errorf("summary body wrong:\n%s", text)
	}
}

func TestWriteSummaryDeletesStaleFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	if err := os.WriteFile(cfg.TagSummaryPath(), []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clean.py"), []byte("no tags here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteSummary(logging.NewTestLogger(io.Discard), cfg); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if _, err := os.Stat(cfg.TagSummaryPath()); !os.IsNotExist(err) {
		t.Error("WriteSummary: stale summary file not deleted")
	}
}
