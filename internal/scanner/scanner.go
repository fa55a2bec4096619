package scanner

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// LineUnknown marks a finding that is not tied to a single line.
const LineUnknown = 0

// Severity levels, highest first.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Scanner defines the interface for all scanning operations
type Scanner interface {
	Scan(text string) []Finding
	ScanFile(path string) ([]Finding, error)
	ScanReader(r io.Reader, meta SourceMeta) ([]Finding, error)
}

// SourceMeta contains metadata about the source being scanned
type SourceMeta struct {
	Path string
}

// Finding represents a detected issue
type Finding struct {
	RuleID   string `json:"ruleId"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line,omitempty"`
	Issue    string `json:"issue"`
	Fix      string `json:"fix"`
}

// HasLine reports whether the finding points at a concrete line.
func (f Finding) HasLine() bool {
	return f.Line != LineUnknown
}

// LineLabel renders the line number, or "N/A" when there is none.
func (f Finding) LineLabel() string {
	if !f.HasLine() {
		return "N/A"
	}
	return strconv.Itoa(f.Line)
}

// Rule describes one built-in check.
type Rule struct {
	ID       string
	Issue    string
	Fix      string
	Severity string
	// PerLine rules run on every line; the rest run once on the whole text.
	PerLine bool
}

const (
	RuleExposedCredential      = "exposed-credential"
	RuleMissingInputValidation = "missing-input-validation"
)

var credentialPattern = regexp.MustCompile(`(?i)(?:api_key|apikey|secret|token)\s*[:=]\s*["']?[A-Za-z0-9_]{16,64}["']?`)

var (
	inputMarkers    = []string{"input(", "request.get("}
	sanitizeMarkers = []string{"strip()", "sanitize"}
)

var rules = []Rule{
	{
		ID:       RuleExposedCredential,
		Issue:    "Potential exposed API key or credential",
		Fix:      "Store sensitive data in environment variables or a secret manager.",
		Severity: SeverityHigh,
		PerLine:  true,
	},
	{
		ID:       RuleMissingInputValidation,
		Issue:    "Possible lack of input validation",
		Fix:      "Add input sanitization (e.g., strip(), escape()) to prevent injection attacks.",
		Severity: SeverityMedium,
	},
}

// Rules returns a copy of the built-in rule set.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// CodeScanner implements the Scanner interface
type CodeScanner struct{}

// NewScanner creates a new Scanner instance
func NewScanner() *CodeScanner {
	return &CodeScanner{}
}

// Scan runs the built-in rules over text
func (s *CodeScanner) Scan(text string) []Finding {
	return Scan(text)
}

// ScanFile scans a file
func (s *CodeScanner) ScanFile(path string) ([]Finding, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return s.ScanReader(file, SourceMeta{Path: path})
}

// ScanReader scans content from an io.Reader
func (s *CodeScanner) ScanReader(r io.Reader, meta SourceMeta) ([]Finding, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sourceName(meta), err)
	}

	findings := Scan(string(content))
	for i := range findings {
		findings[i].Path = meta.Path
	}
	return findings, nil
}

// Scan runs every rule over text. Credential findings come first in line
// order, followed by at most one input validation finding for the whole text.
func Scan(text string) []Finding {
	var findings []Finding

	for i, line := range strings.Split(text, "\n") {
		if credentialPattern.MatchString(line) {
			findings = append(findings, newFinding(rules[0], i+1))
		}
	}

	if containsAny(text, inputMarkers) && !containsAny(text, sanitizeMarkers) {
		findings = append(findings, newFinding(rules[1], LineUnknown))
	}

	return findings
}

func newFinding(r Rule, line int) Finding {
	return Finding{
		RuleID:   r.ID,
		Severity: r.Severity,
		Line:     line,
		Issue:    r.Issue,
		Fix:      r.Fix,
	}
}

// SeverityRank orders severities; unknown values rank below low.
func SeverityRank(severity string) int {
	switch strings.ToLower(severity) {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Helper functions
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func sourceName(meta SourceMeta) string {
	if meta.Path == "" {
		return "input"
	}
	return meta.Path
}
