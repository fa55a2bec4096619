// Package scanner is the public entry point for embedding SecureVibe in
// other programs: scan a block of source text, then render the findings.
package scanner

import (
	"io"

	"github.com/ejagojo/SecureVibe/internal/output"
	internal "github.com/ejagojo/SecureVibe/internal/scanner"
)

// Finding represents a detected issue
type Finding = internal.Finding

// LineUnknown is the line value of findings not tied to a single line.
const LineUnknown = internal.LineUnknown

// Scan evaluates the built-in rules against text.
func Scan(text string) []Finding {
	return internal.Scan(text)
}

// ScanReader reads r fully and scans it.
func ScanReader(r io.Reader) ([]Finding, error) {
	return internal.NewScanner().ScanReader(r, internal.SourceMeta{})
}

// Render formats findings as a human-readable report.
func Render(findings []Finding) string {
	return output.Render(findings)
}
