package todos

import (
	"fmt"
	"log/slog"
)

type outcomeState int

const (
	resolved outcomeState = iota
	unresolved
	fatal
)

// outcome is the result of one step of an operation. Only fatal outcomes
// reach the caller; unresolved ones are logged and the operation carries on
type outcome struct {
	state  outcomeState
	reason string
	err    error
}

func done() outcome {
	return outcome{state: resolved}
}

func skipped(format string, args ...any) outcome {
	return outcome{state: unresolved, reason: fmt.Sprintf(format, args...)}
}

func failed(err error) outcome {
	return outcome{state: fatal, err: err}
}

func (o outcome) applied() bool {
	return o.state == resolved
}

// report logs a step that did not resolve
func (o outcome) report(log *slog.Logger, step string) {
	switch o.state {
	case unresolved:
		log.Debug("step skipped", "step", step, "reason", o.reason)
	case fatal:
		log.Debug("step failed", "step", step, "err", o.err)
	}
}

// settle reports o and returns the error of a fatal outcome
func settle(log *slog.Logger, step string, o outcome) error {
	o.report(log, step)
	if o.state == fatal {
		return o.err
	}
	return nil
}
