package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the ktml logger. Lines carry the "ktml" prefix and an
// "HH:MM:SS.ms" timestamp so they stay apart from command output on a
// shared terminal.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time at debug level, e.g.
// "loaded texture set Wood (12ms)".
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
