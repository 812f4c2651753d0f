// Package logger provides verbose logging for the mcc CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are written to stderr to help users follow sign-in and Ads API calls.
//
// Output is produced by zerolog's console writer. Nothing is written
// unless verbose mode is on, so the TUI and command output stay clean.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	log     = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w)
}

func emit(level zerolog.Level, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	log.WithLevel(level).Msgf(format, args...)
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(zerolog.DebugLevel, format, args)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Info().Str("section", name).Msg("===")
	}
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(zerolog.InfoLevel, format, args)
}

// Warn logs a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(zerolog.WarnLevel, format, args)
}

// Error logs an error with context if verbose mode is enabled.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Error().Err(err).Msgf(format, args...)
	}
}
