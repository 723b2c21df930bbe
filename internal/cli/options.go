// Package cli — options.go implements the shared flag handling for the
// search, link and dry-link commands.
//
// All three commands share the identifier-list input and the search
// filters; link and dry-link add the target directory and the duplicate
// policy. Values are resolved with strict precedence: command-line flags
// override config-file values, which override built-in defaults.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mshrfind/internal/config"
	"github.com/mmr-tortoise/mshrfind/internal/idlist"
	"github.com/mmr-tortoise/mshrfind/internal/logging"
	"github.com/mmr-tortoise/mshrfind/internal/model"
	"github.com/mmr-tortoise/mshrfind/internal/scan"
)

// commonFlags holds the raw flag values shared by every subcommand.
// Empty strings mean "not set on the command line" so the config file
// and built-in defaults can fill them in during resolution.
type commonFlags struct {
	file    string   // -l/--file: identifier list path
	root    string   // -r/--root: search root (default ".")
	pattern string   // -p/--pattern: basename glob pre-filter
	allow   []string // --allow: required path substrings (any of)
	deny    []string // --deny: excluding path substrings
}

// addCommonFlags registers the shared flags on a subcommand.
func addCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().StringVarP(&flags.file, "file", "l", "",
		"File containing a whitespace-separated list of MSHR identifiers")
	cmd.Flags().StringVarP(&flags.root, "root", "r", "",
		`Directory to search recursively (default ".")`)
	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "",
		`Glob applied to filenames before identifier matching (e.g. "*.fastq.gz")`)
	cmd.Flags().StringSliceVar(&flags.allow, "allow", nil,
		"Case-insensitive substring the path must contain (repeatable; any one suffices)")
	cmd.Flags().StringSliceVar(&flags.deny, "deny", nil,
		"Case-insensitive substring that excludes a path (repeatable)")
}

// options holds the fully resolved values a command runs with, after the
// flag > config > default merge. Paths are still as given; the walker and
// linker resolve them to absolute paths at construction.
type options struct {
	file    string
	root    string
	target  string
	pattern string
	allow   []string
	deny    []string
	policy  model.DuplicatePolicy
}

// pick returns the first non-empty value: flag, then config, then default.
func pick(flagVal, cfgVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	return def
}

// loadConfig resolves the config file: the explicit --config path if
// given, otherwise the first .mshrfind.* candidate in the current
// directory. No config file at all yields an empty Config, not an error.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to get current directory", err)
	}
	if path, found := config.Discover(cwd); found {
		logger := logging.GetLogger("cli")
		logger.Debug().Str("path", path).Msg("using discovered config file")
		return config.Load(path)
	}
	return &config.Config{}, nil
}

// resolveOptions merges flags, config file and built-in defaults into the
// final option set. target and duplicates are passed separately because
// only the link commands define those flags; search passes empty strings.
func resolveOptions(flags *commonFlags, target, duplicates string) (*options, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := &options{
		file:    pick(flags.file, cfg.File, ""),
		root:    pick(flags.root, cfg.Root, "."),
		target:  pick(target, cfg.Target, "."),
		pattern: pick(flags.pattern, cfg.Pattern, ""),
		allow:   flags.allow,
		deny:    flags.deny,
	}
	if len(opts.allow) == 0 {
		opts.allow = cfg.Allow
	}
	if len(opts.deny) == 0 {
		opts.deny = cfg.Deny
	}

	policyStr := pick(duplicates, cfg.Duplicates, string(model.PolicyAll))
	opts.policy, err = model.ParseDuplicatePolicy(policyStr)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid --duplicates value", err)
	}

	if opts.file == "" {
		return nil, model.NewCLIError(model.ExitListInvalid,
			"no identifier list file specified (use --file or set it in the config file)")
	}
	return opts, nil
}

// prepareSearch performs the fatal precondition checks shared by all
// commands — identifier list loadable and non-empty, root an existing
// readable directory — and builds the walker/matcher pair.
//
// The list is loaded before the walker is constructed so an empty list
// fails with zero traversal performed.
func prepareSearch(opts *options) (*scan.Walker, *scan.Matcher, error) {
	log := logging.GetLogger("cli")

	set, err := idlist.Load(opts.file)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Int("identifiers", set.Len()).Str("file", opts.file).Msg("identifier list loaded")

	walker, err := scan.NewWalker(opts.root)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("root", walker.Root()).Msg("starting search")

	matcher, err := scan.NewMatcher(set, scan.Filters{
		Pattern: opts.pattern,
		Allow:   opts.allow,
		Deny:    opts.deny,
	})
	if err != nil {
		return nil, nil, err
	}

	return walker, matcher, nil
}
