package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ejagojo/SecureVibe/internal/scanner"
	"github.com/jedib0t/go-pretty/v6/table"
)

// OutputType defines the supported output formats
type OutputType string

const (
	OutputTypeConsole OutputType = "console"
	OutputTypeTable   OutputType = "table"
	OutputTypeJSON    OutputType = "json"
	OutputTypeSARIF   OutputType = "sarif"
)

const (
	noFindingsMessage = "No vulnerabilities detected. Great job!"
	reportHeader      = "Security Issues Found:\n\n"
)

// Render formats findings as the plain text report.
func Render(findings []scanner.Finding) string {
	if len(findings) == 0 {
		return noFindingsMessage
	}

	var b strings.Builder
	b.WriteString(reportHeader)
	for _, f := range findings {
		fmt.Fprintf(&b, "- Line %s: %s\n", f.LineLabel(), f.Issue)
		fmt.Fprintf(&b, "  Fix: %s\n\n", f.Fix)
	}
	return b.String()
}

// WriteFindings writes the findings to the specified output
func WriteFindings(findings []scanner.Finding, outputType OutputType, w io.Writer) error {
	switch outputType {
	case OutputTypeConsole:
		return writeConsole(findings, w)
	case OutputTypeTable:
		return writeTable(findings, w)
	case OutputTypeJSON:
		return writeJSON(findings, w)
	case OutputTypeSARIF:
		return writeSARIF(findings, w)
	default:
		return fmt.Errorf("unsupported output type: %s", outputType)
	}
}

// writeConsole writes the plain text report followed by a newline
func writeConsole(findings []scanner.Finding, w io.Writer) error {
	_, err := fmt.Fprintln(w, Render(findings))
	return err
}

// writeTable writes findings in a human-readable table format
func writeTable(findings []scanner.Finding, w io.Writer) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, noFindingsMessage)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Severity", "Rule", "File", "Line", "Issue", "Fix"})

	for _, f := range findings {
		t.AppendRow(table.Row{
			f.Severity,
			f.RuleID,
			f.Path,
			f.LineLabel(),
			f.Issue,
			f.Fix,
		})
	}

	t.Render()
	return nil
}

// writeJSON writes findings in JSON format
func writeJSON(findings []scanner.Finding, w io.Writer) error {
	if findings == nil {
		findings = []scanner.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// writeSARIF writes findings in SARIF format
func writeSARIF(findings []scanner.Finding, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(generateSARIF(findings))
}

func generateSARIF(findings []scanner.Finding) map[string]interface{} {
	driverRules := []map[string]interface{}{}
	for _, r := range scanner.Rules() {
		driverRules = append(driverRules, map[string]interface{}{
			"id": r.ID,
			"shortDescription": map[string]interface{}{
				"text": r.Issue,
			},
			"help": map[string]interface{}{
				"text": r.Fix,
			},
			"defaultConfiguration": map[string]interface{}{
				"level": mapSeverityToLevel(r.Severity),
			},
		})
	}

	results := []map[string]interface{}{}
	for _, f := range findings {
		result := map[string]interface{}{
			"ruleId":  f.RuleID,
			"level":   mapSeverityToLevel(f.Severity),
			"message": map[string]interface{}{"text": f.Issue + ". " + f.Fix},
		}

		location := map[string]interface{}{}
		if f.Path != "" {
			location["artifactLocation"] = map[string]interface{}{"uri": f.Path}
		}
		// Whole-text findings have no region.
		if f.HasLine() {
			location["region"] = map[string]interface{}{"startLine": f.Line}
		}
		if len(location) > 0 {
			result["locations"] = []map[string]interface{}{
				{"physicalLocation": location},
			}
		}

		results = append(results, result)
	}

	return map[string]interface{}{
		"version": "2.1.0",
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":           "SecureVibe",
						"informationUri": "https://github.com/ejagojo/SecureVibe",
						"rules":          driverRules,
					},
				},
				"results": results,
			},
		},
	}
}

// mapSeverityToLevel maps our severity levels to SARIF levels
func mapSeverityToLevel(severity string) string {
	switch strings.ToLower(severity) {
	case scanner.SeverityHigh:
		return "error"
	case scanner.SeverityMedium:
		return "warning"
	case scanner.SeverityLow:
		return "note"
	default:
		return "none"
	}
}
