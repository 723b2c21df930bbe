package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// writeConfig writes a config file with the given name into a temp dir.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_YAML verifies YAML parsing of all fields.
func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, ".mshrfind.yaml", `
file: /home/me/mshr_lists/all.txt
root: /data/genomes
target: /home/me/genomes/all
pattern: "*.fastq.gz"
allow:
  - mshr
deny:
  - mixed
duplicates: newest
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/me/mshr_lists/all.txt", cfg.File)
	assert.Equal(t, "/data/genomes", cfg.Root)
	assert.Equal(t, "/home/me/genomes/all", cfg.Target)
	assert.Equal(t, "*.fastq.gz", cfg.Pattern)
	assert.Equal(t, []string{"mshr"}, cfg.Allow)
	assert.Equal(t, []string{"mixed"}, cfg.Deny)
	assert.Equal(t, "newest", cfg.Duplicates)
}

// TestLoad_JSONC verifies that JSON config files may carry comments and
// trailing commas, which are stripped before parsing.
func TestLoad_JSONC(t *testing.T) {
	path := writeConfig(t, ".mshrfind.jsonc", `{
	// identifier lists live on the shared project drive
	"file": "/projects/bps/mshr_lists/all.txt",
	"root": "/data/genomes",
	"deny": ["mixed"], // MIXED isolates are handled separately
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/projects/bps/mshr_lists/all.txt", cfg.File)
	assert.Equal(t, "/data/genomes", cfg.Root)
	assert.Equal(t, []string{"mixed"}, cfg.Deny)
}

// TestLoad_Errors verifies malformed and missing files are reported as
// CLIErrors naming the file.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		message string
	}{
		{
			"missing file",
			func(t *testing.T) string { return filepath.Join(t.TempDir(), ".mshrfind.yaml") },
			"config file not found",
		},
		{
			"invalid yaml",
			func(t *testing.T) string { return writeConfig(t, ".mshrfind.yaml", "root: [unclosed") },
			"invalid YAML",
		},
		{
			"invalid json",
			func(t *testing.T) string { return writeConfig(t, ".mshrfind.json", "{not json") },
			"invalid JSON",
		},
		{
			"unsupported extension",
			func(t *testing.T) string { return writeConfig(t, ".mshrfind.toml", "root = '/x'") },
			"unsupported config file extension",
		},
		{
			"invalid duplicates policy",
			func(t *testing.T) string { return writeConfig(t, ".mshrfind.yaml", "duplicates: oldest") },
			"invalid config file",
		},
		{
			"invalid pattern glob",
			func(t *testing.T) string { return writeConfig(t, ".mshrfind.yaml", `pattern: "[unclosed"`) },
			"invalid config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitGeneralError, cliErr.Code)
			assert.Contains(t, cliErr.Message, tt.message)
		})
	}
}

// TestDiscover verifies candidate probing order and the not-found case.
func TestDiscover(t *testing.T) {
	t.Run("no config present", func(t *testing.T) {
		_, found := Discover(t.TempDir())
		assert.False(t, found)
	})

	t.Run("yaml preferred over json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".mshrfind.json"), []byte("{}"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".mshrfind.yaml"), []byte(""), 0o644))

		path, found := Discover(dir)
		require.True(t, found)
		assert.Equal(t, filepath.Join(dir, ".mshrfind.yaml"), path)
	})

	t.Run("directory with candidate name is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".mshrfind.yaml"), 0o755))

		_, found := Discover(dir)
		assert.False(t, found)
	})
}
