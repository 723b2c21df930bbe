// Package scan implements the recursive directory walk and the
// identifier-matching predicate for the mshrfind CLI.
//
// The Walker enumerates every non-directory entry reachable from the root
// via filepath.WalkDir. Directory symlinks are not followed, which
// guarantees termination even on trees containing symlink cycles.
// Traversal errors, including permission errors, abort the walk: a partial
// walk cannot guarantee a complete match set, so subtrees are never
// silently skipped.
//
// The Matcher decides whether a file belongs to the result set. A file
// matches when any identifier from the loaded set appears as a
// case-sensitive substring of its basename. Optional pre-filters narrow
// the candidates first: a glob pattern on the basename, and allow/deny
// substring filters applied case-insensitively to the full path.
package scan
