package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// Walker performs the recursive traversal of the search root, yielding
// every non-directory entry to a caller-supplied callback.
//
// The struct holds only the resolved absolute root. It is defined as a
// struct (rather than a bare function) so that traversal options — e.g.
// a depth limit or an ignore list — can be added later without breaking
// callers, and so the Walker is injectable as a dependency in tests.
type Walker struct {
	root string
}

// NewWalker validates the root directory and returns a Walker for it.
//
// The root must exist and be a directory; this is checked eagerly so the
// failure surfaces before any traversal or linking begins. The root is
// resolved to an absolute path once, here, so every path yielded by Walk
// is absolute and no later code depends on the process working directory.
//
// Returns a CLIError with ExitRootNotFound on a missing or non-directory
// root.
func NewWalker(root string) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot resolve root path: %s", root), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitRootNotFound,
				fmt.Sprintf("root directory not found: %s", abs), err)
		}
		return nil, model.WrapCLIError(model.ExitRootNotFound,
			fmt.Sprintf("cannot access root directory: %s", abs), err)
	}
	if !info.IsDir() {
		return nil, model.NewCLIError(model.ExitRootNotFound,
			fmt.Sprintf("root is not a directory: %s", abs))
	}

	return &Walker{root: abs}, nil
}

// Root returns the resolved absolute root directory.
func (w *Walker) Root() string {
	return w.root
}

// Walk traverses the tree under the root and invokes fn with the absolute
// path of every non-directory entry. Directories themselves are never
// yielded. Symlinks are not descended into, but symlink entries (including
// symlinks to directories) are yielded like regular files, since they are
// candidate names for matching.
//
// Ordering is filesystem-dependent; callers must not rely on it.
//
// Any error — from the traversal itself (e.g. an unreadable directory) or
// returned by fn — aborts the walk and is propagated to the caller.
func (w *Walker) Walk(fn func(path string) error) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories abort the run rather than being
			// skipped: a partial walk cannot guarantee a complete
			// match set.
			return fmt.Errorf("traversal failed at %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		return fn(path)
	})
}
