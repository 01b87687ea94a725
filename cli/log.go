package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/kartva/ph-interpreters/log"
)

// logLevel configures the logger level as a side effect of flag parsing
// via encoding.TextUnmarshaler. Applying the level the moment kong decodes
// the flag means diagnostics emitted during the remainder of parsing
// already honor it.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the logger format as a side effect of flag parsing
// via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"Kitchen"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
	Color      bool      `default:"false"                                      help:"Colorize text output."       negatable:""`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the fully parsed logging flags to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(timeLayout(f.TimeLayout)),
		log.WithCaller(f.Caller),
		log.WithColor(f.Color),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.Bool("caller", f.Caller),
		slog.Bool("color", f.Color),
	)
}

// namedLayouts maps spelling-insensitive names to time package layouts.
var namedLayouts = map[string]string{
	"kitchen":     "3:04PM",
	"rfc3339":     "2006-01-02T15:04:05Z07:00",
	"rfc3339nano": "2006-01-02T15:04:05.999999999Z07:00",
	"stamp":       "Jan _2 15:04:05",
	"stampmilli":  "Jan _2 15:04:05.000",
	"none":        "",
}

// timeLayout resolves a named layout, passing unrecognized strings through
// verbatim for [time.Time.Format].
func timeLayout(s string) string {
	key := make([]rune, 0, len(s))

	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}

		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			key = append(key, r)
		}
	}

	if layout, ok := namedLayouts[string(key)]; ok {
		return layout
	}

	return s
}
