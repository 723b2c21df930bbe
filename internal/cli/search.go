// Package cli — search.go implements the "mshrfind search" command.
//
// The search command walks the tree under --root and prints every file
// whose name contains an identifier from the list, one absolute path per
// line. The output is suitable for redirecting to a file — but note it is
// a list of paths, not a list of identifiers, so it cannot be fed back in
// as a --file argument.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/mshrfind/internal/logging"
	"github.com/mmr-tortoise/mshrfind/internal/model"
	"github.com/mmr-tortoise/mshrfind/internal/scan"
)

// NewSearchCommand creates the "search" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSearchCommand() *cobra.Command {
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List files whose names match the identifier list",
		Long: `Recursively search --root for files whose names contain any identifier
from the --file list, and print one matched path per line.

Examples:
  mshrfind search --file mshr_ids.txt
  mshrfind search -l mshr_ids.txt -r /data/genomes
  mshrfind search -l mshr_ids.txt -r /data/genomes -p "*.fastq.gz" > matched.txt`,

		// No positional arguments; everything comes in via flags.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags)
		},
	}

	addCommonFlags(cmd, flags)

	return cmd
}

// runSearch is the main logic function for the search command.
// It resolves options, checks the fatal preconditions, then streams
// matches to stdout as the walk produces them — matching is read-only,
// so there is nothing to buffer or roll back.
func runSearch(cmd *cobra.Command, flags *commonFlags) error {
	log := logging.GetLogger("cli")

	opts, err := resolveOptions(flags, "", "")
	if err != nil {
		return err
	}

	walker, matcher, err := prepareSearch(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if IsJSONOutput() {
		// JSON output needs the complete set, so collect first.
		// Use an empty slice instead of nil to ensure JSON output shows
		// [] instead of null when nothing matches.
		matches := make([]model.Match, 0)
		if err := scan.Find(walker, matcher, func(match model.Match) error {
			matches = append(matches, match)
			return nil
		}); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "search failed", err)
		}

		result := struct {
			Matches []model.Match `json:"matches"`
		}{Matches: matches}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		log.Info().Int("matches", len(matches)).Msg("search complete")
		return nil
	}

	// Text mode: one path per line, emitted in walk order.
	count := 0
	if err := scan.Find(walker, matcher, func(match model.Match) error {
		count++
		_, werr := fmt.Fprintln(out, match.Path)
		return werr
	}); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "search failed", err)
	}

	log.Info().Int("matches", count).Msg("search complete")
	return nil
}
