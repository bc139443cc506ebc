package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a colored text logger at the named level. Unknown levels
// fall back to info.
func NewLogger(level string) *logrus.Logger {
	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	lg.Level = lvl
	return lg
}

// Discard returns a logger that drops everything. Tests use it to keep
// diagnostics out of the output.
func Discard() *logrus.Logger {
	lg := logrus.New()
	lg.Out = io.Discard
	return lg
}
