package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// execute runs the CLI with the given arguments against a fresh root
// command and returns captured stdout, stderr and the command error.
// Building a new root command per call re-binds all flag variables to
// their defaults, so tests do not leak flag state into each other.
func execute(args ...string) (stdout, stderr string, err error) {
	root := NewRootCommand()

	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errBuf.String(), err
}

// exitCodeOf extracts the CLIError exit code from a command error,
// failing the test if the error is not a CLIError.
func exitCodeOf(t *testing.T, err error) model.ExitCode {
	t.Helper()
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected a CLIError, got %v", err)
	return cliErr.Code
}

// writeTree creates a file (and parents) under root with the given content.
func writeTree(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeIDList creates an identifier list file in its own temp dir.
func writeIDList(t *testing.T, content string) string {
	t.Helper()
	return writeTree(t, t.TempDir(), "ids.txt", content)
}

// TestNewRootCommand_Subcommands verifies all three commands are registered.
func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "link")
	assert.Contains(t, names, "dry-link")
}

// TestRootCommand_Version verifies the version string contains the
// injected build info.
func TestRootCommand_Version(t *testing.T) {
	stdout, _, err := execute("--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
	assert.Contains(t, stdout, Commit)
}

// TestUnknownSubcommand verifies an unknown subcommand is rejected.
func TestUnknownSubcommand(t *testing.T) {
	_, _, err := execute("frobnicate")
	assert.Error(t, err)
}
