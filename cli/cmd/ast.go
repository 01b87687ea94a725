package cmd

import (
	"context"
	"io"
	"os"

	"github.com/kartva/ph-interpreters/lang"
	"github.com/kartva/ph-interpreters/log"
)

// Ast parses a source file and prints its syntax tree without running it.
type Ast struct {
	Source string `arg:"" help:"Source file or '-' for stdin" name:"source"`

	out io.Writer
}

// Run executes the ast command.
func (a *Ast) Run(ctx context.Context) error {
	source, err := readSource(a.Source)
	if err != nil {
		return err
	}

	prog, err := lang.ParseProgram(ctx, source, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	out := a.out
	if out == nil {
		out = os.Stdout
	}

	return prog.Print(out)
}
