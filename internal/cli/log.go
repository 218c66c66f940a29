package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger: leveled, with sub-second timestamps
// (e.g. "14:32:01.45"), writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
}

// progress times one pipeline stage for CLI feedback. Single-goroutine use.
type progress struct {
	logger  *log.Logger
	started time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, started: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Packed 42 cards (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.started).Round(time.Millisecond))
}
