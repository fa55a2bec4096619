package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ejagojo/SecureVibe/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindings() []scanner.Finding {
	return scanner.Scan("api_key = \"sk_test_1234567890abcdef\"\nuser_input = input(\"Enter your name: \")\nprint(user_input)")
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "No vulnerabilities detected. Great job!", Render(nil))
	assert.Equal(t, "No vulnerabilities detected. Great job!", Render([]scanner.Finding{}))
}

func TestRender(t *testing.T) {
	want := "Security Issues Found:\n\n" +
		"- Line 1: Potential exposed API key or credential\n" +
		"  Fix: Store sensitive data in environment variables or a secret manager.\n\n" +
		"- Line N/A: Possible lack of input validation\n" +
		"  Fix: Add input sanitization (e.g., strip(), escape()) to prevent injection attacks.\n\n"

	assert.Equal(t, want, Render(sampleFindings()))
}

func TestRender_CredentialLines(t *testing.T) {
	findings := scanner.Scan("token: 'abcdefghijklmnop1234'\nx = 1\nSECRET=ABCDEFGHIJKLMNOPQRSTUV")
	require.Len(t, findings, 2)

	want := "Security Issues Found:\n\n" +
		"- Line 1: Potential exposed API key or credential\n" +
		"  Fix: Store sensitive data in environment variables or a secret manager.\n\n" +
		"- Line 3: Potential exposed API key or credential\n" +
		"  Fix: Store sensitive data in environment variables or a secret manager.\n\n"
	assert.Equal(t, want, Render(findings))
}

func TestRender_CustomFinding(t *testing.T) {
	findings := []scanner.Finding{{Line: 42, Issue: "Something", Fix: "Do better"}}
	assert.Equal(t, "Security Issues Found:\n\n- Line 42: Something\n  Fix: Do better\n\n", Render(findings))
}

func TestRender_Pure(t *testing.T) {
	assert.Equal(t, Render(sampleFindings()), Render(sampleFindings()))
}

func TestWriteFindings_Console(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(sampleFindings(), OutputTypeConsole, &buf))
	assert.Equal(t, Render(sampleFindings())+"\n", buf.String())
}

func TestWriteFindings_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(sampleFindings(), OutputTypeTable, &buf))

	output := buf.String()
	assert.Contains(t, output, "SEVERITY")
	assert.Contains(t, output, "exposed-credential")
	assert.Contains(t, output, "N/A")
}

func TestWriteFindings_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(nil, OutputTypeTable, &buf))
	assert.Equal(t, "No vulnerabilities detected. Great job!\n", buf.String())
}

func TestWriteFindings_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(sampleFindings(), OutputTypeJSON, &buf))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["line"])
	assert.NotContains(t, decoded[1], "line")
}

func TestWriteFindings_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(nil, OutputTypeJSON, &buf))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteFindings_SARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFindings(sampleFindings(), OutputTypeSARIF, &buf))

	var log struct {
		Runs []struct {
			Results []struct {
				RuleID    string        `json:"ruleId"`
				Level     string        `json:"level"`
				Locations []interface{} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Results, 2)
	assert.Equal(t, "error", log.Runs[0].Results[0].Level)
	assert.Len(t, log.Runs[0].Results[0].Locations, 1)
	assert.Equal(t, "warning", log.Runs[0].Results[1].Level)
	assert.Empty(t, log.Runs[0].Results[1].Locations)
}

func TestWriteFindings_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFindings(nil, OutputType("xml"), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output type: xml")
}

func TestMapSeverityToLevel(t *testing.T) {
	tests := []struct {
		severity string
		expected string
	}{
		{"high", "error"},
		{"medium", "warning"},
		{"low", "note"},
		{"unknown", "none"},
	}

	for _, test := range tests {
		level := mapSeverityToLevel(test.severity)
		if level != test.expected {
			t.Errorf("Expected level %s for severity %s, got %s", test.expected, test.severity, level)
		}
	}
}
