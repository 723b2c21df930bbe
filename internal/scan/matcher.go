package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// Filters are the optional pre-filters applied to a candidate path before
// the identifier predicate runs. The zero value filters nothing.
type Filters struct {
	// Pattern is a glob matched against the basename (e.g. "*.fastq.gz").
	// Empty means every basename passes.
	Pattern string

	// Allow lists substrings of which at least one must appear in the
	// full path, compared case-insensitively. Empty means no allow
	// filtering.
	Allow []string

	// Deny lists substrings none of which may appear in the full path,
	// compared case-insensitively. Deny wins over Allow.
	Deny []string
}

// Matcher applies the filters and the identifier-substring predicate to
// candidate paths produced by the Walker. It is pure: no side effects,
// no filesystem access.
type Matcher struct {
	set     *model.IdentifierSet
	filters Filters
}

// NewMatcher builds a Matcher over the given identifier set and filters.
//
// The glob pattern is syntax-checked here so a malformed pattern fails at
// startup instead of somewhere mid-walk.
func NewMatcher(set *model.IdentifierSet, filters Filters) (*Matcher, error) {
	if filters.Pattern != "" {
		// filepath.Match reports ErrBadPattern for malformed globs
		// regardless of the name argument, so matching against an empty
		// name is a pure syntax check.
		if _, err := filepath.Match(filters.Pattern, ""); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid --pattern glob: %q", filters.Pattern), err)
		}
	}
	return &Matcher{set: set, filters: filters}, nil
}

// Match tests a candidate path and, on success, returns the Match pairing
// the path with the identifier that hit. The predicate is:
//
//  1. the basename matches the glob pattern (if one is set),
//  2. the full path passes the allow/deny substring filters, and
//  3. some identifier is a case-sensitive substring of the basename.
//
// First identifier hit short-circuits; a filename containing several
// identifiers is still just one match.
func (m *Matcher) Match(path string) (model.Match, bool) {
	base := filepath.Base(path)

	if m.filters.Pattern != "" {
		// Pattern validity was checked in NewMatcher, so the error
		// cannot occur here.
		ok, _ := filepath.Match(m.filters.Pattern, base)
		if !ok {
			return model.Match{}, false
		}
	}

	if !m.passesPathFilters(path) {
		return model.Match{}, false
	}

	id, ok := m.set.MatchBasename(base)
	if !ok {
		return model.Match{}, false
	}
	return model.Match{Path: path, Identifier: id}, true
}

// passesPathFilters applies the allow/deny substring filters to the full
// path, case-insensitively. Deny is checked first so a path matching both
// lists is excluded.
func (m *Matcher) passesPathFilters(path string) bool {
	lower := strings.ToLower(path)

	for _, deny := range m.filters.Deny {
		if deny != "" && strings.Contains(lower, strings.ToLower(deny)) {
			return false
		}
	}

	if len(m.filters.Allow) == 0 {
		return true
	}
	for _, allow := range m.filters.Allow {
		if allow != "" && strings.Contains(lower, strings.ToLower(allow)) {
			return true
		}
	}
	return false
}

// Find composes the Walker and Matcher: it walks the tree and invokes fn
// for every match, in traversal order. An error from the walk or from fn
// aborts the search.
//
// This is the shared match-collection phase of all three commands; only
// the per-match action differs between them.
func Find(w *Walker, m *Matcher, fn func(model.Match) error) error {
	return w.Walk(func(path string) error {
		match, ok := m.Match(path)
		if !ok {
			return nil
		}
		return fn(match)
	})
}
