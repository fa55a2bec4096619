// Package e2e runs the securevibe binary against files in a scratch
// directory. The binary must be on PATH.
package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestHelper provides utilities for end-to-end tests
type TestHelper struct {
	t       *testing.T
	workDir string
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		t:       t,
		workDir: t.TempDir(),
	}
}

// WorkDir is the directory commands run in.
func (h *TestHelper) WorkDir() string {
	return h.workDir
}

// WriteFile creates name under the work dir and returns its path.
func (h *TestHelper) WriteFile(name, content string) string {
	h.t.Helper()

	path := filepath.Join(h.workDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// RunCommand runs a command and returns its output
func (h *TestHelper) RunCommand(stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = h.workDir
	cmd.Env = append(os.Environ(), "HOME="+h.workDir)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// AssertOutput asserts that the command output matches the expected pattern
func (h *TestHelper) AssertOutput(stdout, stderr string, expectedPattern string) {
	h.t.Helper()

	if !strings.Contains(stdout+stderr, expectedPattern) {
		h.t.Errorf("output does not contain expected pattern %q", expectedPattern)
	}
}

// AssertExitCode asserts that the command exited with the expected code
func (h *TestHelper) AssertExitCode(err error, expectedCode int) {
	h.t.Helper()

	if err == nil {
		if expectedCode != 0 {
			h.t.Errorf("expected exit code %d, got 0", expectedCode)
		}
		return
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() != expectedCode {
			h.t.Errorf("expected exit code %d, got %d", expectedCode, exitErr.ExitCode())
		}
	} else {
		h.t.Errorf("unexpected error: %v", err)
	}
}
