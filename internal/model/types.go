// Package model defines the domain types for the mshrfind CLI.
//
// All entities in this package are transient representations that live for
// a single command invocation: the identifier set is loaded once from the
// list file, matches are produced by the walk and consumed immediately,
// and link specs describe symlinks whose lifecycle belongs to the
// filesystem once created. There is no persistent state between runs.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// IdentifierSet is the set of MSHR identifiers loaded from the --file
// argument. Membership is order-independent and duplicate-tolerant:
// duplicates in the source file collapse to a single entry.
//
// The set is immutable after construction and owned exclusively by the
// running command for its duration.
type IdentifierSet struct {
	ids map[string]struct{}
}

// NewIdentifierSet builds an IdentifierSet from a slice of raw tokens.
// Duplicate tokens collapse silently; empty tokens are ignored.
func NewIdentifierSet(tokens []string) *IdentifierSet {
	ids := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		ids[tok] = struct{}{}
	}
	return &IdentifierSet{ids: ids}
}

// Contains reports whether the exact identifier is a member of the set.
func (s *IdentifierSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct identifiers in the set.
func (s *IdentifierSet) Len() int {
	return len(s.ids)
}

// MatchBasename reports whether any identifier in the set appears as a
// case-sensitive substring of the given filename, and returns the first
// identifier that matched. Iteration order over the set is unspecified,
// so when several identifiers match the same name the returned identifier
// is arbitrary — all multi-identifier matches collapse to "matched".
func (s *IdentifierSet) MatchBasename(name string) (string, bool) {
	for id := range s.ids {
		if strings.Contains(name, id) {
			return id, true
		}
	}
	return "", false
}

// Values returns the identifiers as a sorted slice. Used for logging and
// deterministic test assertions; the matching path never depends on order.
func (s *IdentifierSet) Values() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Match pairs a discovered file path with the identifier that matched its
// basename. Matches exist only as intermediate results between the walk
// and the mode action; they carry no persistent identity.
type Match struct {
	// Path is the absolute path of the matched file.
	Path string `json:"path"`

	// Identifier is the set member found in the file's basename.
	// When the basename contains several identifiers, this is the first
	// one the matcher hit; duplicate resolution groups on this value.
	Identifier string `json:"identifier"`
}

// LinkSpec describes a symbolic link to be created: Source is the absolute
// path of the matched file, Destination is <target>/<basename(source)>.
//
// In link mode the spec results in a real symlink whose lifecycle is
// entirely external once created; in dry-link mode it is only printed.
type LinkSpec struct {
	// Source is the absolute path the symlink will point to.
	Source string `json:"source"`

	// Destination is the path of the symlink itself, inside the target
	// directory, named after the source's basename.
	Destination string `json:"destination"`
}

// String returns the dry-link output format: "<source> -> <destination>".
func (l LinkSpec) String() string {
	return fmt.Sprintf("%s -> %s", l.Source, l.Destination)
}

// DuplicatePolicy controls what happens when several matched files carry
// the same identifier in link and dry-link modes.
type DuplicatePolicy string

const (
	// PolicyAll links every match, regardless of shared identifiers.
	PolicyAll DuplicatePolicy = "all"

	// PolicyNewest keeps only the most recently modified file per
	// identifier, discarding older duplicates before linking.
	PolicyNewest DuplicatePolicy = "newest"
)

// String returns the string representation of the DuplicatePolicy.
func (p DuplicatePolicy) String() string {
	return string(p)
}

// IsValid checks whether the DuplicatePolicy is one of the predefined
// valid policies.
func (p DuplicatePolicy) IsValid() bool {
	switch p {
	case PolicyAll, PolicyNewest:
		return true
	default:
		return false
	}
}

// ParseDuplicatePolicy converts a string to a DuplicatePolicy.
// Returns an error if the string does not match any valid policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	policy := DuplicatePolicy(strings.ToLower(s))
	if !policy.IsValid() {
		return "", fmt.Errorf("invalid duplicate policy: %q (valid: all, newest)", s)
	}
	return policy, nil
}

// ExitCode defines the CLI exit codes. These codes allow scripts and
// pipelines to programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitRootNotFound indicates the --root directory does not exist,
	// is not a directory, or could not be read.
	ExitRootNotFound ExitCode = 2

	// ExitListInvalid indicates the identifier list file is missing,
	// unreadable, or contains no identifiers. An empty set would silently
	// match nothing, so it is rejected before any traversal.
	ExitListInvalid ExitCode = 3

	// ExitTargetNotFound indicates the --target directory for link or
	// dry-link mode does not exist or is not a directory.
	ExitTargetNotFound ExitCode = 4

	// ExitLinkPartial indicates the run completed but one or more
	// individual link creations failed (e.g. destination already exists).
	ExitLinkPartial ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
