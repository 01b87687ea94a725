package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/kartva/ph-interpreters/lang"
)

// stdinSource is the special source path for reading from stdin.
const stdinSource = "-"

// readSource returns the contents of the file at path, or of stdin when
// path is "-".
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == stdinSource {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return "", lang.ErrReadInput.Wrap(err).
			With(slog.String("source", path))
	}

	return string(data), nil
}
