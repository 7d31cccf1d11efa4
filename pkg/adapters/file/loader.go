// Package file loads Tendril scripts from disk and reloads them on change.
package file

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxScriptSize bounds how much of a script file is read.
const MaxScriptSize = 1 << 20

// ErrTooLarge is returned for scripts above MaxScriptSize.
var ErrTooLarge = errors.New("script file too large")

// Load reads the script at path.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxScriptSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	if len(data) > MaxScriptSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return data, nil
}
