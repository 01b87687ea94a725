//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// pprofConfig keeps its flags without the pprof build tag so command lines
// stay valid across builds; profiling itself is compiled out.
type pprofConfig struct {
	Mode string `default:"" enum:",cpu,mem,goroutine,block,mutex,trace" help:"Enable profiling (requires pprof build tag)" placeholder:"mode" short:"p"`
	Dir  string `default:"./pprof"                                      help:"Profile output directory" type:"path"`
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start is a no-op without the pprof build tag.
func (pprofConfig) start(context.Context) (stop func()) { return func() {} }
