package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	noise "github.com/next-exp/noise_go/pkg"
	"golang.org/x/exp/slices"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "run_2.h5", "run_1.h5", "extra.h5")

	files, err := expandInputs([]string{
		filepath.Join(dir, "extra.h5"),
		filepath.Join(dir, "run_*.h5"),
		filepath.Join(dir, "run_1.h5"),
	})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	want := []string{
		filepath.Join(dir, "extra.h5"),
		filepath.Join(dir, "run_1.h5"),
		filepath.Join(dir, "run_2.h5"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("got %v want %v", files, want)
	}
}

func TestExpandInputsErrors(t *testing.T) {
	if _, err := expandInputs(nil); !errors.Is(err, noise.ErrNoInputFiles) {
		t.Fatalf("got %v want ErrNoInputFiles", err)
	}
	if _, err := expandInputs([]string{filepath.Join(t.TempDir(), "*.h5")}); err == nil {
		t.Fatalf("expected error for a pattern without matches")
	}
	if _, err := expandInputs([]string{"[a-"}); err == nil {
		t.Fatalf("expected error for a malformed pattern")
	}
}
