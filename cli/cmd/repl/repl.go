package repl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/kartva/ph-interpreters/lang"
	"github.com/kartva/ph-interpreters/log"
	"github.com/kartva/ph-interpreters/pkg"
)

const (
	promptMain = pkg.Name + "> "
	promptCont = "...> "
)

var (
	styleResult = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleNotice = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const helpText = `Enter an expression to evaluate it, or a fn declaration to define it.
Declarations persist for the rest of the session; redefining a name
replaces it.

Commands:
  :help     Show this help
  :list     List session declarations
  :clear    Forget all session declarations
  :quit     Exit`

// Repl is an interactive read-eval-print session. Function declarations
// accumulate; each entered expression runs against them as the body of a
// synthetic main.
type Repl struct {
	History string `help:"History file path." placeholder:"path"`
}

// session holds the function declarations entered so far, in declaration
// order with redefinitions replacing in place.
type session struct {
	names   []string
	sources map[string]string
}

func newSession() *session {
	return &session{sources: make(map[string]string)}
}

func (s *session) define(name, source string) {
	if _, ok := s.sources[name]; !ok {
		s.names = append(s.names, name)
	}

	s.sources[name] = source
}

func (s *session) clear() {
	s.names = nil
	s.sources = make(map[string]string)
}

// program assembles a complete source from the session declarations plus
// an optional extra declaration.
func (s *session) program(extra string) string {
	var buf strings.Builder

	for _, name := range s.names {
		buf.WriteString(s.sources[name])
		buf.WriteString("\n")
	}

	buf.WriteString(extra)

	return buf.String()
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := r.History
	if histPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, "."+pkg.Name+"_history")
		}
	}

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)

	defer signal.Stop(sigc)

	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	sess := newSession()

	ln.SetCompleter(completer(sess))

	fmt.Printf("%s %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for help.\n",
		pkg.Name, pkg.VersionString())

	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()

			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := r.command(sess, input); quit {
				return nil
			}

			continue
		}

		r.eval(ctx, sess, input)
	}
}

// readInput reads one logical input, continuing across lines until braces
// balance. It returns false on EOF.
func readInput(ln *liner.State) (string, bool) {
	var (
		lines  []string
		prompt = promptMain
	)

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", true
			}

			return "", false
		}

		lines = append(lines, line)

		input := strings.Join(lines, "\n")
		if braceBalance(input) <= 0 {
			return input, true
		}

		prompt = promptCont
	}
}

// braceBalance counts unmatched opening braces.
func braceBalance(s string) int {
	depth := 0

	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}

	return depth
}

// command dispatches a ":" control command, reporting whether the session
// should end.
func (r *Repl) command(sess *session, input string) (quit bool) {
	switch strings.ToLower(input) {
	case ":quit", ":q":
		return true

	case ":help":
		fmt.Println(helpText)

	case ":list":
		if len(sess.names) == 0 {
			fmt.Println(styleNotice.Render("no declarations"))

			break
		}

		for _, name := range sess.names {
			fmt.Println(sess.sources[name])
		}

	case ":clear":
		sess.clear()
		fmt.Println(styleNotice.Render("session cleared"))

	default:
		fmt.Println(styleError.Render("unknown command; type :help for help"))
	}

	return false
}

// eval handles one non-command input: a fn declaration is validated and
// added to the session, anything else runs as the return value of a
// synthetic main.
func (r *Repl) eval(ctx context.Context, sess *session, input string) {
	logger := log.Default()

	if strings.HasPrefix(input, "fn") && isDeclaration(input) {
		prog, err := lang.ParseProgram(ctx, sess.program(input), lang.WithLogger(logger))
		if err != nil {
			fmt.Println(styleError.Render(err.Error()))

			return
		}

		name := prog.Functions[len(prog.Functions)-1].Name.Name
		sess.define(name, input)
		fmt.Println(styleNotice.Render("defined " + name))

		return
	}

	source := sess.program("fn main() { return " + input + "; }")

	prog, err := lang.ParseProgram(ctx, source, lang.WithLogger(logger))
	if err != nil {
		fmt.Println(styleError.Render(err.Error()))

		return
	}

	value, _, err := lang.Run(ctx, prog, lang.WithLogger(logger))
	if err != nil {
		fmt.Println(styleError.Render(err.Error()))

		return
	}

	fmt.Println(styleResult.Render(fmt.Sprintf("%d", value)))
}

// isDeclaration distinguishes "fn f() {...}" from expressions that merely
// start with an identifier prefixed "fn", such as "fnord(1)".
func isDeclaration(input string) bool {
	rest := input[len("fn"):]

	return len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n')
}
