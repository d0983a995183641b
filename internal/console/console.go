// Package console provides the shared leveled logger used by every
// generator component. Call sites use printf-style formatting; output
// goes through a zerolog console writer so diagnostics stay readable
// when the generator runs in a terminal.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the package-wide logger instance.
var Logger = New(os.Stderr)

// Console wraps a zerolog logger with printf-style helpers.
// DebugLevel gates Debug output: zero silences it.
type Console struct {
	DebugLevel int

	zl zerolog.Logger
}

// New returns a Console writing human-readable output to w.
func New(w io.Writer) *Console {
	output := zerolog.ConsoleWriter{Out: w}
	return &Console{zl: zerolog.New(output).With().Timestamp().Logger()}
}

// SetQuiet drops all output when on; turning it off restores full output.
func (c *Console) SetQuiet(quiet bool) {
	if quiet {
		c.zl = c.zl.Level(zerolog.Disabled)
		return
	}
	c.zl = c.zl.Level(zerolog.TraceLevel)
}

// SetOutput redirects all subsequent output to w.
func (c *Console) SetOutput(w io.Writer) {
	c.zl = c.zl.Output(zerolog.ConsoleWriter{Out: w})
}

func (c *Console) Debug(format string, args ...interface{}) {
	if c.DebugLevel <= 0 {
		return
	}
	c.zl.Debug().Msgf(trimNewline(format), args...)
}

func (c *Console) Info(format string, args ...interface{}) {
	c.zl.Info().Msgf(trimNewline(format), args...)
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.zl.Warn().Msgf(trimNewline(format), args...)
}

func (c *Console) Error(format string, args ...interface{}) {
	c.zl.Error().Msgf(trimNewline(format), args...)
}

// trimNewline strips trailing newlines so callers can keep printf habits
// without producing blank lines in the console output.
func trimNewline(format string) string {
	return strings.TrimRight(format, "\n")
}
