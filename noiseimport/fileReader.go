package main

import (
	"fmt"
	"path/filepath"

	noise "github.com/next-exp/noise_go/pkg"
)

// expandInputs resolves glob patterns keeping the given order. A pattern
// without matches is an error.
func expandInputs(patterns []string) ([]string, error) {
	files := make([]string, 0, len(patterns))
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no noise files match %q", pattern)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, noise.ErrNoInputFiles
	}
	return files, nil
}
