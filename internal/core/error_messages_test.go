package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "not found error maps by type",
			err:         &NotFoundError{Path: "a.csv", Err: os.ErrNotExist},
			wantCode:    "FILE006",
			wantMessage: "File not found",
		},
		{
			name:        "wrapped parse error maps by type",
			err:         fmt.Errorf("profile: %w", &ParseError{Path: "a.csv", Line: 3, Err: errors.New("wrong number of fields")}),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "empty table maps by type",
			err:         &EmptyTableError{Path: "a.csv"},
			wantCode:    "FILE005",
			wantMessage: "The file has no columns",
		},
		{
			name:        "path required",
			err:         ErrPathRequired,
			wantCode:    "FILE004",
			wantMessage: "File path not provided",
		},
		{
			name:        "path outside root",
			err:         fmt.Errorf("%w: /etc/passwd", ErrPathNotAllowed),
			wantCode:    "FILE007",
			wantMessage: "This path is not allowed",
		},
		{
			name:        "file too large",
			err:         fmt.Errorf("%w: 2048 bytes exceeds 1024", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum size limit",
		},
		{
			name:        "limiter busy",
			err:         ErrTooManyProfiles,
			wantCode:    "PRF001",
			wantMessage: "System is busy profiling other files",
		},
		{
			name:        "deadline",
			err:         fmt.Errorf("profile: %w", context.DeadlineExceeded),
			wantCode:    "PRF003",
			wantMessage: "Profiling took too long",
		},
		{
			name:        "cancelled",
			err:         context.Canceled,
			wantCode:    "PRF002",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "flattened error text still matches",
			err:         errors.New("upstream: invalid csv: x.csv: line 2"),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "audit disabled",
			err:         ErrAuditDisabled,
			wantCode:    "AUD001",
			wantMessage: "The audit log is not enabled",
		},
		{
			name:        "unsupported output format",
			err:         fmt.Errorf("%w: %q", ErrUnsupportedFormat, "xml"),
			wantCode:    "REQ001",
			wantMessage: "Unsupported output format",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("EMPTY TABLE: x.csv"),
			wantCode:    "FILE005",
			wantMessage: "The file has no columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &NotFoundError{Path: "missing.csv", Err: os.ErrNotExist}
	result := FormatUserError(err)

	expected := "File not found (Code: FILE006). Check the path and file permissions"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  &EmptyTableError{Path: "x.csv"},
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := &ParseError{Path: "x.csv", Line: 4, Err: errors.New("wrong number of fields")}
		userErr := NewUserError(techErr)

		if userErr.Error() != "File is not a valid CSV" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}

		var pe *ParseError
		if !errors.As(userErr, &pe) || pe.Line != 4 {
			t.Error("Unwrap() should return original error")
		}
	})
}
