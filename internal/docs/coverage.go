package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/chorepkg/chore/internal/config"
)

// coverageSchema validates the coverage.json shape produced by
// `coverage json` before the table is rendered.
const coverageSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Coverage JSON report",
  "type": "object",
  "required": ["meta", "files"],
  "properties": {
    "meta": {
      "type": "object",
      "required": ["timestamp"],
      "properties": {
        "timestamp": { "type": "string" }
      }
    },
    "files": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["summary"],
        "properties": {
          "summary": {
            "type": "object",
            "required": ["percent_covered", "num_statements", "missing_lines", "excluded_lines"],
            "properties": {
              "percent_covered": { "type": "number" },
              "num_statements": { "type": "integer" },
              "missing_lines": { "type": "integer" },
              "excluded_lines": { "type": "integer" }
            }
          }
        }
      }
    }
  }
}`

// coverageReport models the subset of the coverage JSON that the table uses.
type coverageReport struct {
	Meta struct {
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Files map[string]struct {
		Summary struct {
			PercentCovered float64 `json:"percent_covered"`
			NumStatements  int     `json:"num_statements"`
			MissingLines   int     `json:"missing_lines"`
			ExcludedLines  int     `json:"excluded_lines"`
		} `json:"summary"`
	} `json:"files"`
}

// EmbedCoverage reads the coverage JSON report and replaces the COVERAGE
// marker region in the README with a Markdown table, one row per file sorted
// by path, followed by the report's generation timestamp. A missing report
// is logged and skipped.
func EmbedCoverage(logger *log.Logger, cfg *config.Config) error {
	path := cfg.CoveragePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Coverage report not found, skipping README update", "path", path)
			return nil
		}
		return fmt.Errorf("read coverage report: %w", err)
	}

	if err := validateCoverage(data); err != nil {
		return fmt.Errorf("invalid coverage report %s: %w", path, err)
	}

	var report coverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse coverage report %s: %w", path, err)
	}

	table := coverageTable(cfg, &report)
	return updateReadme(cfg, coveragePattern, map[string][]string{"COVERAGE": table})
}

// validateCoverage checks the raw report against the embedded JSON Schema.
func validateCoverage(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("coverage.schema.json", strings.NewReader(coverageSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile("coverage.schema.json")
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}

// coverageTable renders the per-file Markdown table. Rows are sorted by file
// path so repeated runs produce identical output.
func coverageTable(cfg *config.Config, report *coverageReport) []string {
	legend := []string{"File", "Statements", "Missing", "Excluded", "Coverage"}
	divider := make([]string, len(legend))
	for i := range divider {
		divider[i] = "--:"
	}
	lines := []string{
		"| " + strings.Join(legend, " | ") + " |",
		"| " + strings.Join(divider, " | ") + " |",
	}

	paths := make([]string, 0, len(report.Files))
	for p := range report.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		summary := report.Files[p].Summary
		rel := p
		if r, err := filepath.Rel(cfg.ProjectRoot, p); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		lines = append(lines, fmt.Sprintf("| `%s` | %d | %d | %d | %.1f%% |",
			filepath.ToSlash(rel),
			summary.NumStatements,
			summary.MissingLines,
			summary.ExcludedLines,
			summary.PercentCovered,
		))
	}

	lines = append(lines, "", "Generated on: "+report.Meta.Timestamp)
	return lines
}
