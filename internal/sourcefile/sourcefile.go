// Package sourcefile implements the compiler's only I/O boundary: reading a
// translation unit from a path or standard input, per spec.md §6's "Input
// file format". It is kept separate from lang/scanner so the scanner itself
// never touches the filesystem, matching the teacher's convention of
// isolating OS-facing code in internal/ and keeping lang/ packages pure.
package sourcefile

import (
	"fmt"
	"io"
	"os"
)

// Read loads the source named by path, or standard input if path is "-".
// It appends a trailing newline if the file doesn't already end with one,
// then appends a NUL terminator, both required by lang/scanner's
// NUL-terminated-buffer contract.
func Read(path string, stdin io.Reader) (src []byte, err error) {
	var raw []byte
	if path == "-" {
		raw, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
	} else {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if len(raw) == 0 || raw[len(raw)-1] != '\n' {
		raw = append(raw, '\n')
	}
	raw = append(raw, 0)
	return raw, nil
}

// DisplayName returns the name to use in diagnostics and the ".file"
// directive for path: "<stdin>" when reading from standard input, path
// unchanged otherwise.
func DisplayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
