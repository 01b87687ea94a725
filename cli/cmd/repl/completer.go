package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// keywords are the language's reserved words plus the print builtin.
var keywords = []string{"fn", "if", "else", "while", "return", "print"}

// ctrlCommands are the available ":" control commands.
var ctrlCommands = []string{":help", ":list", ":clear", ":quit"}

// isWordBoundary reports whether r delimits words for completion. Braces,
// operators, and whitespace all end a word; digits and letters do not.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n',
		'(', ')', '{', '}',
		'+', '-', '*', '/',
		'<', '>', '=', '!',
		',', ';':
		return true
	}

	return false
}

// wordBounds returns the word ending at the cursor and its byte offset
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	return input[start:cursor], start
}

// completer builds a liner completion function over the language keywords,
// the session's declared function names, and the control commands.
func completer(sess *session) func(string) []string {
	return func(line string) []string {
		word, start := wordBounds(line, len(line))
		if word == "" {
			return nil
		}

		var candidates []string

		if strings.HasPrefix(word, ":") {
			candidates = ctrlCommands
		} else {
			candidates = append(candidates, keywords...)
			candidates = append(candidates, sess.names...)
		}

		matches := fuzzy.Find(word, candidates)

		completions := make([]string, 0, len(matches))
		for _, m := range matches {
			completions = append(completions, line[:start]+m.Str)
		}

		return completions
	}
}
