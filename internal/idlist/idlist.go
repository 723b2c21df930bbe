// Package idlist loads the MSHR identifier list file.
//
// The list format is plain text with whitespace-separated tokens, one
// identifier per token — no quoting, no escaping, no comments. A file
// containing identifiers 123, 124 and 125 looks like:
//
//	123 124 125
//
// or the same tokens split across lines; any whitespace separates.
//
// An empty or unreadable list is a fatal error rather than an empty set:
// an empty set would silently match nothing and make a broken run look
// like a successful one.
package idlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// Load reads the identifier list file at path and returns the parsed set.
//
// Returns a CLIError with ExitListInvalid if the file does not exist,
// cannot be read, or yields zero identifiers after splitting.
func Load(path string) (*model.IdentifierSet, error) {
	// os.ReadFile handles the open-read-close lifecycle in a single call;
	// the list files are tiny, so slurping is fine.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitListInvalid,
				fmt.Sprintf("identifier list file not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(
			model.ExitListInvalid,
			fmt.Sprintf("cannot read identifier list file: %s", path),
			err,
		)
	}

	// strings.Fields splits on any run of whitespace, which matches the
	// list format exactly: spaces, tabs and newlines all separate tokens.
	tokens := strings.Fields(string(data))
	set := model.NewIdentifierSet(tokens)

	if set.Len() == 0 {
		return nil, model.NewCLIError(
			model.ExitListInvalid,
			fmt.Sprintf("identifier list file is empty: %s", path),
		)
	}

	return set, nil
}
