// Package linker creates the symbolic links for the link and dry-link
// commands.
//
// The Linker validates the target directory eagerly, builds LinkSpecs
// (<target>/<basename> pointing at the absolute source path), applies the
// duplicate resolution policy, and performs the actual symlink syscalls.
//
// Per-link failures are recoverable: a destination that already exists is
// reported and skipped, the remaining matches proceed, and the caller
// turns the accumulated failures into a non-zero exit status. Fatal
// preconditions (missing target directory) fail before anything is
// created.
package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mmr-tortoise/mshrfind/internal/logging"
	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// ErrDestinationExists reports that a link destination is already present.
// Callers use errors.Is against this to distinguish the recoverable
// already-exists case from other link failures.
var ErrDestinationExists = errors.New("link destination already exists")

// Linker builds link specs against a validated target directory and
// creates the corresponding symlinks.
//
// All methods receive their inputs as parameters; the only state is the
// resolved target directory, fixed at construction.
type Linker struct {
	target string
}

// NewLinker validates the target directory and returns a Linker for it.
//
// The target must exist and be a directory. This is checked before any
// traversal begins so that no links are attempted against a bad target.
// Returns a CLIError with ExitTargetNotFound otherwise.
func NewLinker(target string) (*Linker, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot resolve target path: %s", target), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitTargetNotFound,
				fmt.Sprintf("target directory not found: %s", abs), err)
		}
		return nil, model.WrapCLIError(model.ExitTargetNotFound,
			fmt.Sprintf("cannot access target directory: %s", abs), err)
	}
	if !info.IsDir() {
		return nil, model.NewCLIError(model.ExitTargetNotFound,
			fmt.Sprintf("target is not a directory: %s", abs))
	}

	return &Linker{target: abs}, nil
}

// Target returns the resolved absolute target directory.
func (l *Linker) Target() string {
	return l.target
}

// Spec builds the LinkSpec for a match: the destination lives inside the
// target directory and is named after the source's basename.
func (l *Linker) Spec(match model.Match) model.LinkSpec {
	return model.LinkSpec{
		Source:      match.Path,
		Destination: filepath.Join(l.target, filepath.Base(match.Path)),
	}
}

// Create makes the symlink described by spec, pointing the destination at
// the absolute source path.
//
// If the destination already exists, Create returns an error wrapping
// ErrDestinationExists and leaves the existing entry untouched. Other
// failures (e.g. permission denied on the target directory) are returned
// as-is for the caller to report.
func (l *Linker) Create(spec model.LinkSpec) error {
	log := logging.GetLogger("linker")

	if err := os.Symlink(spec.Source, spec.Destination); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s (source %s)",
				ErrDestinationExists, spec.Destination, spec.Source)
		}
		return fmt.Errorf("cannot create link %s -> %s: %w",
			spec.Source, spec.Destination, err)
	}

	log.Debug().
		Str("source", spec.Source).
		Str("destination", spec.Destination).
		Msg("link created")
	return nil
}

// ResolveDuplicates applies the duplicate policy to a match set.
//
// PolicyAll returns the matches unchanged. PolicyNewest groups matches by
// the identifier that matched and keeps only the most recently modified
// file per group; group order follows first appearance in the input, so
// output stays deterministic for a given walk order.
//
// A file that cannot be stat'ed sorts as oldest rather than failing the
// run; the match set was built from a live walk, so this only happens when
// the tree mutates underneath us.
func ResolveDuplicates(matches []model.Match, policy model.DuplicatePolicy) []model.Match {
	if policy != model.PolicyNewest {
		return matches
	}

	log := logging.GetLogger("linker")

	type group struct {
		index int // position in the output slice
		mtime time.Time
	}
	groups := make(map[string]group)
	kept := make([]model.Match, 0, len(matches))

	for _, match := range matches {
		mtime := modTime(match.Path)

		g, seen := groups[match.Identifier]
		if !seen {
			groups[match.Identifier] = group{index: len(kept), mtime: mtime}
			kept = append(kept, match)
			continue
		}
		if mtime.After(g.mtime) {
			log.Debug().
				Str("identifier", match.Identifier).
				Str("replaced", kept[g.index].Path).
				Str("with", match.Path).
				Msg("newer duplicate wins")
			kept[g.index] = match
			groups[match.Identifier] = group{index: g.index, mtime: mtime}
		}
	}
	return kept
}

// modTime returns the file's modification time, or the zero time when the
// stat fails.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
