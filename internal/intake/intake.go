// Package intake reads resume text from local plain-text files and streams.
package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AllowedExtensions lists the file types accepted as resume text.
var AllowedExtensions = []string{".txt", ".md"}

// ErrUnsupportedFile is returned for paths without an allowed extension.
var ErrUnsupportedFile = errors.New("unsupported file type: use a .txt or .md file")

// Allowed reports whether name has an allowed extension (case-insensitive).
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// ReadTextFile returns the whole contents of a .txt or .md file as text.
// There is no size limit and no encoding check.
func ReadTextFile(path string) (string, error) {
	if !Allowed(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume file: %w", err)
	}
	return string(data), nil
}

// ReadText reads r to EOF.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}

// ReadArg resolves a CLI argument: "-" reads stdin, anything else is a file path.
func ReadArg(arg string, stdin io.Reader) (string, error) {
	if arg == "-" {
		return ReadText(stdin)
	}
	return ReadTextFile(arg)
}
