// Package cliutil provides shared CLI utilities for asnops command-line tools.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// Stdin is the argument that selects standard input.
const Stdin = "-"

// ErrMixedStdin is returned when "-" is combined with file arguments.
var ErrMixedStdin = errors.New("stdin (-) cannot be combined with file arguments")

// UseStdin reports whether args select standard input: no arguments, or
// the single argument "-".
func UseStdin(args []string) (bool, error) {
	switch {
	case len(args) == 0:
		return true, nil
	case len(args) == 1 && args[0] == Stdin:
		return true, nil
	case slices.Contains(args, Stdin):
		return false, ErrMixedStdin
	default:
		return false, nil
	}
}

// ReadInput reads a single document from path, or from stdin when path is
// "" or "-". It returns the content and a display name.
func ReadInput(path string, stdin io.Reader) ([]byte, string, error) {
	if path == "" || path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "<stdin>", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return data, path, nil
}

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string, stdout io.Writer) (io.Writer, func(), error) {
	if outputFile == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "error: "+format+"\n", args...)
}
