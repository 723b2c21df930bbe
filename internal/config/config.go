// Package config loads the optional mshrfind configuration file.
//
// The config file supplies defaults for flags that rarely change between
// runs on the same machine — the search root, the link target, the glob
// pattern and the allow/deny filters. Precedence is strict: command-line
// flags override config values, config values override built-in defaults.
//
// Two formats are accepted, decided by file extension:
//   - .yaml / .yml, parsed with gopkg.in/yaml.v3
//   - .json / .jsonc, parsed with encoding/json after stripping JSONC
//     comments and trailing commas via github.com/tidwall/jsonc, so
//     hand-maintained config files can carry comments
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// candidateNames are the config file names probed by Discover, in
// precedence order.
var candidateNames = []string{
	".mshrfind.yaml",
	".mshrfind.yml",
	".mshrfind.json",
	".mshrfind.jsonc",
}

// Config holds the file-supplied defaults. The zero value means "nothing
// configured"; empty fields never override a flag or a built-in default.
type Config struct {
	// File is the default identifier list path.
	File string `json:"file" yaml:"file"`

	// Root is the default search root.
	Root string `json:"root" yaml:"root"`

	// Target is the default link destination directory.
	Target string `json:"target" yaml:"target"`

	// Pattern is the default basename glob (e.g. "*.fastq.gz").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Allow lists path substrings of which at least one must be present
	// (case-insensitive).
	Allow []string `json:"allow" yaml:"allow"`

	// Deny lists path substrings that exclude a candidate
	// (case-insensitive).
	Deny []string `json:"deny" yaml:"deny"`

	// Duplicates is the default duplicate policy: "all" or "newest".
	Duplicates string `json:"duplicates" yaml:"duplicates"`
}

// Validate checks the field values that have a constrained domain.
// Called after load so a typo in the config file fails at startup with a
// message naming the file, not mid-run.
func (c *Config) Validate() error {
	if c.Duplicates != "" {
		if _, err := model.ParseDuplicatePolicy(c.Duplicates); err != nil {
			return err
		}
	}
	if c.Pattern != "" {
		if _, err := filepath.Match(c.Pattern, ""); err != nil {
			return fmt.Errorf("invalid pattern glob %q: %w", c.Pattern, err)
		}
	}
	return nil
}

// Discover probes dir for a config file, returning the first candidate
// name that exists. The second return value is false when none is found —
// which is not an error; the config file is optional.
func Discover(dir string) (string, bool) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads and parses the config file at path. The format is chosen by
// extension; unknown extensions are rejected rather than guessed.
//
// Returns a CLIError with ExitGeneralError on a missing or malformed
// file — an explicitly named config file that cannot be read is a user
// error, not something to skip silently.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot read config file: %s", path), err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid YAML in config file: %s", path), err)
		}
	case ".json", ".jsonc":
		// Strip // and /* */ comments and trailing commas first; config
		// files maintained by hand frequently carry both.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid JSON in config file: %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unsupported config file extension: %s (use .yaml, .yml, .json or .jsonc)", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid config file: %s", path), err)
	}
	return cfg, nil
}
