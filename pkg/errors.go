package noise

import (
	"errors"
	"fmt"
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// FieldNotFoundError is returned when a table or field required by the
// corpus builder is absent from an input file.
type FieldNotFoundError struct {
	File string
	Path string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in file %q", e.Path, e.File)
}

// ShapeMismatchError reports a field whose dimensions do not agree with the
// rest of the corpus.
type ShapeMismatchError struct {
	File string
	Path string
	Want []int
	Got  []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("field %q in file %q has shape %v, expected %v", e.Path, e.File, e.Got, e.Want)
}

// DegenerateSeriesError is returned by the interpolator when fewer than two
// samples are available.
type DegenerateSeriesError struct {
	Samples int
}

func (e *DegenerateSeriesError) Error() string {
	return fmt.Sprintf("cannot interpolate a series of %d samples, at least 2 are needed", e.Samples)
}

var (
	ErrNoInputFiles   = errors.New("no input files given")
	ErrUnknownChannel = errors.New("channel not present in detector description")
)
