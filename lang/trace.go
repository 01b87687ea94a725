package lang

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/kartva/ph-interpreters/log"
)

// tracer holds the process-wide parser trace state. Tracing is off by
// default and costs one mutex read per labeled parser application when off.
type tracer struct {
	mu      sync.Mutex
	enabled bool
	depth   int
	logger  log.Logger
}

var trace tracer

// EnableTrace turns on parser tracing. Every [Parser.Label] wrapper logs
// its entry and exit through the given logger at Trace level until
// [DisableTrace] is called.
func EnableTrace(logger log.Logger) {
	trace.mu.Lock()
	defer trace.mu.Unlock()

	trace.enabled = true
	trace.depth = 0
	trace.logger = logger
}

// DisableTrace turns off parser tracing.
func DisableTrace() {
	trace.mu.Lock()
	defer trace.mu.Unlock()

	trace.enabled = false
	trace.logger = log.Logger{}
}

// enter logs rule entry and bumps the nesting depth, returning true when
// tracing is on so the caller knows to log the matching exit.
func (t *tracer) enter(name string, in Input) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return false
	}

	t.logger.Trace(
		strings.Repeat("| ", t.depth)+"try "+name,
		slog.Int("offset", in.Offset()),
		slog.String("input", in.preview()),
	)
	t.depth++

	return true
}

// exit unwinds one nesting level and logs the rule's result.
func (t *tracer) exit(name string, r Outcome[Parsed[any], *ParseError]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.depth > 0 {
		t.depth--
	}

	if !t.enabled {
		return
	}

	indent := strings.Repeat("| ", t.depth)
	if r.IsFailure() {
		t.logger.Trace(
			indent+"fail "+name,
			slog.String("error", r.Err().Message),
		)

		return
	}

	t.logger.Trace(
		indent+"ok "+name,
		slog.Int("offset", r.Value().Rest.Offset()),
	)
}

// Label names p for trace output. When tracing is enabled the returned
// parser logs entry and exit around each application; results are passed
// through unchanged either way.
func (p Parser[T]) Label(name string) Parser[T] {
	return func(in Input) Outcome[Parsed[T], *ParseError] {
		if !trace.enter(name, in) {
			return p(in)
		}

		r := p(in)

		if r.IsFailure() {
			trace.exit(name, bad[any](r.Err()))

			return r
		}

		trace.exit(name, good[any](nil, r.Value().Rest))

		return r
	}
}
