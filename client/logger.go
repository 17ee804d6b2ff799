package client

import (
	"io"

	"github.com/rs/zerolog"

	"cosmossdk.io/log"
)

// NewLogger returns a console logger writing to w. Progress output goes to
// stderr so stdout stays reserved for results.
func NewLogger(w io.Writer, verbose bool) log.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return log.NewLogger(w, log.LevelOption(level))
}
