package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Service before the profiler runs.
var (
	// ErrPathRequired is returned when the caller supplied no file path.
	ErrPathRequired = errors.New("file path not provided")

	// ErrPathNotAllowed is returned when the path resolves outside the
	// configured root directory.
	ErrPathNotAllowed = errors.New("path outside allowed root")

	// ErrFileTooLarge is returned when the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// NotFoundError reports a path that does not exist or cannot be read.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports content that is not valid delimited text, including
// rows whose field count disagrees with the header.
type ParseError struct {
	Path string
	Line int // 1-based line in the source, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid csv: %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid csv: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyTableError reports a file whose header row has no fields.
type EmptyTableError struct {
	Path string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("empty table: %s has no columns", e.Path)
}
