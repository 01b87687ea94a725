package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kartva/ph-interpreters/lang"
	"github.com/kartva/ph-interpreters/log"
)

// Run parses a source file and invokes its main function. When main
// returns a value explicitly, the value is printed on its own line after
// any print output.
type Run struct {
	Source string `arg:"" help:"Source file or '-' for stdin" name:"source"`
	Trace  bool   `help:"Log each parser rule application at trace level."`

	// out overrides the destination of print and the final value; tests
	// set it, the CLI leaves it nil for stdout.
	out io.Writer
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	source, err := readSource(r.Source)
	if err != nil {
		return err
	}

	if r.Trace {
		lang.EnableTrace(log.Default())
		defer lang.DisableTrace()
	}

	prog, err := lang.ParseProgram(ctx, source, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	out := r.out
	if out == nil {
		out = os.Stdout
	}

	value, returned, err := lang.Run(ctx, prog,
		lang.WithLogger(log.Default()),
		lang.WithStdout(out),
	)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("source", r.Source))
	}

	if returned {
		fmt.Fprintln(out, value)
	}

	return nil
}
