package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAndRender(t *testing.T) {
	text := "api_key = \"sk_test_1234567890abcdef\"\nuser_input = input(\"Enter your name: \")\nprint(user_input)"

	findings := Scan(text)
	require.Len(t, findings, 2)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, LineUnknown, findings[1].Line)

	report := Render(findings)
	assert.True(t, strings.HasPrefix(report, "Security Issues Found:\n\n- Line 1: Potential exposed API key or credential\n"))
	assert.Contains(t, report, "- Line N/A: Possible lack of input validation\n")
}

func TestScanReader(t *testing.T) {
	findings, err := ScanReader(strings.NewReader("print('hello')"))
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, "No vulnerabilities detected. Great job!", Render(findings))
}

func TestScanReader_Credential(t *testing.T) {
	findings, err := ScanReader(strings.NewReader("# config\napikey = \"0123456789abcdefABCDEF\"\n"))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, "Security Issues Found:\n\n- Line 2: Potential exposed API key or credential\n"+
		"  Fix: Store sensitive data in environment variables or a secret manager.\n\n", Render(findings))
}
