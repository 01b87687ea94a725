package lang

import (
	"io"
	"os"

	"github.com/kartva/ph-interpreters/log"
)

// Option configures [ParseProgram] and [Run].
type Option func(*options)

type options struct {
	logger log.Logger
	stdout io.Writer
}

func makeOptions(opts ...Option) options {
	cfg := options{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger routes diagnostic output through the given logger. The
// default is a zero-value logger, which discards everything.
func WithLogger(logger log.Logger) Option {
	return func(cfg *options) { cfg.logger = logger }
}

// WithStdout redirects the output of the print builtin. The default is
// [os.Stdout].
func WithStdout(w io.Writer) Option {
	return func(cfg *options) { cfg.stdout = w }
}
