// Package cli — dry_link.go implements the "mshrfind dry-link" command.
//
// dry-link behaves exactly like link — same flags, same match collection,
// same duplicate resolution, same target precondition — except that no
// links are created. Instead it prints one "<source> -> <destination>"
// line per would-be link, which makes it useful for checking a link run
// before committing to it. Running it twice with the same arguments
// produces identical output, since it is read-only.
package cli

import (
	"github.com/spf13/cobra"
)

// NewDryLinkCommand creates the "dry-link" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDryLinkCommand() *cobra.Command {
	flags := &linkFlags{}

	cmd := &cobra.Command{
		Use:   "dry-link",
		Short: "Print the links that a link run would create, without creating them",
		Long: `Search --root for files matching the identifier list and print the
symbolic links that "mshrfind link" would create, one per line in the
form "<source> -> <destination>". Nothing is written to the filesystem.

Examples:
  mshrfind dry-link -l mshr_ids.txt -r /data/genomes -t ./selected
  mshrfind dry-link -l mshr_ids.txt -r /data/genomes -t ./selected --json`,

		Args: cobra.NoArgs,

		// Delegates to the link implementation with dryRun enabled,
		// so the two commands can never drift apart in behavior.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, flags, true)
		},
	}

	addLinkFlags(cmd, flags)

	return cmd
}
