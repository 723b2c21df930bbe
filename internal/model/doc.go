// Package model defines the domain types and value objects for the
// mshrfind CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (IdentifierSet, Match, LinkSpec, DuplicatePolicy) are
// transient — nothing outlives a single command invocation, and there are
// no persistent state files between runs.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
