package logger

import (
	"log"
	"os"
)

// Logger wraps a couple of log.Logger instances in private fields.
// They are accessible via their respective methods.
type Logger struct {
	debug   *log.Logger
	error   *log.Logger
	verbose bool
}

// NewLogger returns a reference to a Logger.
// We usually call this when initializing cmd.Logger.
// Both debug and error go to os.Stderr; command output is written by the
// commands themselves.
func NewLogger(verbose bool) *Logger {
	return &Logger{
		log.New(os.Stderr, "", 0),
		log.New(os.Stderr, "", 0),
		verbose,
	}
}

// Debug prints a formatted message to stderr only if verbose is set.
// Consider these messages useful for developers of the CLI.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.debug.Printf(format, args...)
	}
}

// Error prints a message and the given error's message to os.Stderr
func (l *Logger) Error(msg string, err error) {
	if err != nil {
		l.error.Print(msg, err.Error())
	}
}
