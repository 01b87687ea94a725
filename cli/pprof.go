//go:build pprof

package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/kartva/ph-interpreters/log"
)

type pprofConfig struct {
	Mode string `default:"" enum:",cpu,mem,goroutine,block,mutex,trace" help:"Enable profiling" placeholder:"mode" short:"p"`
	Dir  string `default:"./pprof"                                      help:"Profile output directory" type:"path"`
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start begins profiling when a mode is selected; the returned func stops
// it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	opts := []func(*profile.Profile){
		profile.ProfilePath(f.Dir),
		profile.Quiet,
	}

	switch f.Mode {
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "goroutine":
		opts = append(opts, profile.GoroutineProfile)
	case "block":
		opts = append(opts, profile.BlockProfile)
	case "mutex":
		opts = append(opts, profile.MutexProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	}

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	profiler := profile.Start(opts...)

	return func() {
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", f.Mode),
		)
		profiler.Stop()
	}
}
