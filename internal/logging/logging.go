// Package logging configures the process-wide zerolog logger for the
// mshrfind CLI.
//
// All log output goes to stderr: stdout is reserved for command output
// (search results, dry-link previews), which users routinely pipe into
// files and downstream tools.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on the -v/--verbose count.
//
//	0: warnings and errors only (the default, quiet run)
//	1: info — one line per phase (list loaded, walk started, run summary)
//	2: debug — per-link and per-decision detail
//	3+: trace
func Setup(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}

// GetLogger returns a contextualized logger with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
