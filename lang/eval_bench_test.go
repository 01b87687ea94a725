package lang

import (
	"context"
	"testing"

	"github.com/kartva/ph-interpreters/log"
)

const benchSource = `
fn fib(n) {
	if n < 2 {
		return n;
	}
	return fib(n - 1) + fib(n - 2);
}

fn main() {
	return fib(15);
}
`

func BenchmarkParseProgram(b *testing.B) {
	b.Cleanup(ClearParseCache)

	for b.Loop() {
		// An option disables the cache, so every iteration parses.
		if _, err := ParseProgram(context.Background(), benchSource, WithLogger(log.Logger{})); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseProgramCached(b *testing.B) {
	b.Cleanup(ClearParseCache)

	for b.Loop() {
		if _, err := ParseProgram(context.Background(), benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	prog, err := ParseProgram(context.Background(), benchSource)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, _, err := Run(context.Background(), prog); err != nil {
			b.Fatal(err)
		}
	}
}
