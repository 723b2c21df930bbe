// Package cli — link.go implements the "mshrfind link" command.
//
// The link command performs the same search as "mshrfind search", then
// creates one symbolic link per match inside --target, named after the
// source file's basename and pointing at its absolute path.
//
// Link creation is silent on success. A destination that already exists
// is reported to stderr and skipped; the run continues with the remaining
// matches and exits non-zero if any match failed. Fatal preconditions
// (missing list, root, or target) abort before anything is created.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mshrfind/internal/linker"
	"github.com/mmr-tortoise/mshrfind/internal/logging"
	"github.com/mmr-tortoise/mshrfind/internal/model"
	"github.com/mmr-tortoise/mshrfind/internal/scan"
)

// linkFlags holds the flag values for the link and dry-link commands.
// Both commands share the full flag set; they differ only in whether the
// links are actually created.
type linkFlags struct {
	commonFlags
	target     string // -t/--target: directory to create links in
	duplicates string // --duplicates: "all" or "newest"
}

// addLinkFlags registers the link-specific flags on top of the common set.
func addLinkFlags(cmd *cobra.Command, flags *linkFlags) {
	addCommonFlags(cmd, &flags.commonFlags)
	cmd.Flags().StringVarP(&flags.target, "target", "t", "",
		`Directory to create the links in (default ".")`)
	cmd.Flags().StringVar(&flags.duplicates, "duplicates", "",
		`How to handle several matches per identifier: "all" links every match, "newest" keeps only the most recently modified (default "all")`)
}

// NewLinkCommand creates the "link" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLinkCommand() *cobra.Command {
	flags := &linkFlags{}

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create symbolic links to matched files in a target directory",
		Long: `Search --root for files matching the identifier list, then create a
symbolic link for each match inside --target. Links are named after the
source file's basename and point at its absolute path.

Existing destinations are reported and skipped; the run continues and
exits non-zero if any link could not be created.

Examples:
  mshrfind link -l mshr_ids.txt -r /data/genomes -t ./selected
  mshrfind link --file all.txt --root /data/melioidosis/genomes --target ~/projects/bps/genomes/all
  mshrfind link -l ids.txt -r /data/genomes -t ./selected --duplicates newest`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, flags, false)
		},
	}

	addLinkFlags(cmd, flags)

	return cmd
}

// runLink is the shared logic for link and dry-link; dryRun selects
// between creating the symlinks and only printing the specs.
//
// Unlike search, the match set is collected before acting: duplicate
// resolution needs to see every match for an identifier before deciding
// which one wins.
func runLink(cmd *cobra.Command, flags *linkFlags, dryRun bool) error {
	log := logging.GetLogger("cli")

	opts, err := resolveOptions(&flags.commonFlags, flags.target, flags.duplicates)
	if err != nil {
		return err
	}

	walker, matcher, err := prepareSearch(opts)
	if err != nil {
		return err
	}

	// The target precondition applies to both link modes and is checked
	// before traversal, so a bad target fails fast with nothing created.
	lnk, err := linker.NewLinker(opts.target)
	if err != nil {
		return err
	}

	var matches []model.Match
	if err := scan.Find(walker, matcher, func(match model.Match) error {
		matches = append(matches, match)
		return nil
	}); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "search failed", err)
	}

	matches = linker.ResolveDuplicates(matches, opts.policy)
	log.Info().Int("matches", len(matches)).Str("policy", opts.policy.String()).Msg("match collection complete")

	if dryRun {
		return printDryRun(cmd, lnk, matches)
	}

	// Create the links. Per-match failures are reported immediately and
	// counted; they must not unwind the rest of the run.
	errOut := cmd.ErrOrStderr()
	failed := 0
	for _, match := range matches {
		spec := lnk.Spec(match)
		if createErr := lnk.Create(spec); createErr != nil {
			failed++
			fmt.Fprintf(errOut, "Error: %v\n", createErr)
		}
	}

	log.Info().Int("created", len(matches)-failed).Int("failed", failed).Msg("link run complete")

	if failed > 0 {
		return model.NewCLIError(model.ExitLinkPartial,
			fmt.Sprintf("%d of %d links could not be created", failed, len(matches)))
	}
	return nil
}

// printDryRun emits the would-be links without touching the filesystem:
// one "<source> -> <destination>" line per match, or a JSON array with
// --json.
func printDryRun(cmd *cobra.Command, lnk *linker.Linker, matches []model.Match) error {
	out := cmd.OutOrStdout()

	if IsJSONOutput() {
		// Empty slice rather than nil so empty output is [] not null.
		specs := make([]model.LinkSpec, 0, len(matches))
		for _, match := range matches {
			specs = append(specs, lnk.Spec(match))
		}

		result := struct {
			Links []model.LinkSpec `json:"links"`
		}{Links: specs}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, match := range matches {
		if _, err := fmt.Fprintln(out, lnk.Spec(match).String()); err != nil {
			return err
		}
	}
	return nil
}
