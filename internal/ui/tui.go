// Package ui provides an optional terminal interface for browsing tagged
// comments.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/tags"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// RunTUI starts the tag browser for the project.
func RunTUI(ctx context.Context, logger *log.Logger, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTagModel(logger, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tagModel struct {
	logger      *log.Logger
	cfg         *config.Config
	collections []tags.FileTags
	order       []string
	counts      map[string]int
	filter      string // active tag filter, "" for all
	loadErr     error
	showHelp    bool
}

func newTagModel(logger *log.Logger, cfg *config.Config) *tagModel {
	m := &tagModel{logger: logger, cfg: cfg}
	m.refresh()
	return m
}

func (m *tagModel) Init() tea.Cmd {
	return nil
}

func (m *tagModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "0":
			m.filter = ""
			return m, nil
		default:
			if idx := digitIndex(msg.String()); idx >= 1 && idx <= len(tags.Vocabulary) {
				m.filter = tags.Vocabulary[idx-1]
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *tagModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tagged Comments") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error scanning project:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", tagStyle.Render(m.filter)))
	}

	display := m.filtered()
	if len(display) == 0 {
		b.WriteString("No tagged comments found.\n\n")
		writeFooter(&b)
		return b.String()
	}

	for _, ft := range display {
		b.WriteString(headerStyle.Render(relToRoot(m.cfg.ProjectRoot, ft.Path)) + "\n")
		for _, c := range ft.Comments {
			fmt.Fprintf(&b, "  line %3d %s: %s\n", c.Line, tagStyle.Render(fmt.Sprintf("%7s", c.Tag)), c.Text)
		}
		b.WriteString("\n")
	}

	writeSummaryLine(&b, m.order, m.counts)
	writeFooter(&b)
	return b.String()
}

// filtered returns the collections limited to the active tag filter.
func (m *tagModel) filtered() []tags.FileTags {
	if m.filter == "" {
		return m.collections
	}
	var out []tags.FileTags
	for _, ft := range m.collections {
		var comments []tags.Comment
		for _, c := range ft.Comments {
			if c.Tag == m.filter {
				comments = append(comments, c)
			}
		}
		if len(comments) > 0 {
			out = append(out, tags.FileTags{Path: ft.Path, Comments: comments})
		}
	}
	return out
}

func (m *tagModel) refresh() {
	collections, err := tags.Collect(m.logger, m.cfg)
	if err != nil {
		m.loadErr = err
		m.collections = nil
		return
	}
	m.loadErr = nil
	m.collections = collections
	m.order, m.counts = tags.Counts(collections)
}

func writeSummaryLine(b *strings.Builder, order []string, counts map[string]int) {
	if len(order) == 0 {
		return
	}
	parts := make([]string, 0, len(order))
	for _, tag := range order {
		parts = append(parts, fmt.Sprintf("%s (%d)", tag, counts[tag]))
	}
	b.WriteString(strings.Join(parts, ",  ") + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keys\n\n")
	b.WriteString("  q        quit\n")
	b.WriteString("  r, f5    rescan the project\n")
	for i, tag := range tags.Vocabulary {
		fmt.Fprintf(b, "  %d        filter %s\n", i+1, tag)
	}
	b.WriteString("  0        clear filter\n")
	b.WriteString("  h, ?     toggle this help\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(faintStyle.Render("q quit · r rescan · 1-9 filter · 0 all · h help") + "\n")
}

func digitIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '0')
}

func relToRoot(root, path string) string {
	if rel, ok := strings.CutPrefix(path, root+string(os.PathSeparator)); ok {
		return rel
	}
	return path
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
