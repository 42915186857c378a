package models

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a required input CSV does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedInput covers a missing header or rows of inconsistent shape.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMissingColumn is returned when a required column is absent from the schema.
	ErrMissingColumn = errors.New("missing column")
	// ErrWriteError is returned when the destination cannot be written.
	ErrWriteError = errors.New("write error")
)

// StageError names the dataset, pipeline stage and file a run failed on.
type StageError struct {
	Dataset string
	Stage   string
	Path    string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s pipeline failed at %s (%s): %v", e.Dataset, e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
