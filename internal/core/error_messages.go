// Package core provides the business logic for profiling CSV files.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
// Errors related to locating and parsing the requested file:
//
//	FILE001 - File too large: File exceeds the configured size limit
//	          Action: Split the file into smaller chunks
//	          Source: ErrFileTooLarge, pattern "file too large"
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Action: Ensure every row has the same number of fields as the header
//	          Source: *ParseError, pattern "invalid csv"
//
//	FILE004 - No path: No file path was given
//	          Action: Enter the path of a CSV file to analyze
//	          Source: ErrPathRequired, pattern "file path not provided"
//
//	FILE005 - Empty table: The file has no header columns
//	          Action: Provide a CSV file with a header row
//	          Source: *EmptyTableError, pattern "empty table"
//
//	FILE006 - Not found: The file does not exist or cannot be read
//	          Action: Check the path and file permissions
//	          Source: *NotFoundError, pattern "file not found"
//
//	FILE007 - Not allowed: The path is outside the allowed directory
//	          Action: Choose a file inside the configured data directory
//	          Source: ErrPathNotAllowed, pattern "outside allowed root"
//
// # Profile Errors (PRF001-PRF099)
//
// Errors related to running a profile:
//
//	PRF001 - System busy: Too many profiles in progress
//	         Action: Please wait a moment and try again
//	         Source: ErrTooManyProfiles, pattern "too many profiles"
//
//	PRF002 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Source: context.Canceled, pattern "context canceled"
//
//	PRF003 - Request timeout: Profiling took too long
//	         Action: Try a smaller file or try again later
//	         Source: context.DeadlineExceeded, pattern "context deadline exceeded"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Unsupported format: The requested output format is unknown
//	         Action: Use format=json, yaml or text
//	         Patterns: "unsupported format"
//
//	REQ002 - Bad request: The request body could not be read
//	         Action: Send a JSON body such as {"path": "data.csv"}
//	         Patterns: "invalid request body"
//
// # Audit Errors (AUD001-AUD099)
//
//	AUD001 - Audit disabled: No audit database is configured
//	         Action: Set DATABASE_URL to record profile requests
//	         Source: ErrAuditDisabled, pattern "audit log disabled"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Authentication (AUTH001-AUTH099)
//
//	AUTH001 - Missing API key
//	          Action: Send the key in the X-API-Key header
//	          Patterns: "api key required"
//
//	AUTH002 - Invalid API key
//	          Action: Check the key with your administrator
//	          Patterns: "invalid api key"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching
//
// Typed errors and sentinels are checked first with errors.As / errors.Is,
// so wrapping never hides them. Anything else is matched case-insensitively
// against the pattern table with strings.Contains; the first match wins.
//
// # For Support Staff
//
// When a user reports an error code:
//  1. Look up the code in this reference
//  2. Check the associated source to understand what triggered it
//  3. Review the suggested action to guide the user
//  4. If ERR000, check application logs for the original technical error
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure every row has the same number of fields as the header",
		Code:    "FILE002",
	}
	msgPathRequired = UserMessage{
		Message: "File path not provided",
		Action:  "Enter the path of a CSV file to analyze",
		Code:    "FILE004",
	}
	msgEmptyTable = UserMessage{
		Message: "The file has no columns",
		Action:  "Provide a CSV file with a header row",
		Code:    "FILE005",
	}
	msgNotFound = UserMessage{
		Message: "File not found",
		Action:  "Check the path and file permissions",
		Code:    "FILE006",
	}
	msgPathNotAllowed = UserMessage{
		Message: "This path is not allowed",
		Action:  "Choose a file inside the configured data directory",
		Code:    "FILE007",
	}
	msgTooManyProfiles = UserMessage{
		Message: "System is busy profiling other files",
		Action:  "Please wait a moment and try again",
		Code:    "PRF001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "PRF002",
	}
	msgTimeout = UserMessage{
		Message: "Profiling took too long",
		Action:  "Try a smaller file or try again later",
		Code:    "PRF003",
	}
	msgAuditDisabled = UserMessage{
		Message: "The audit log is not enabled",
		Action:  "Set DATABASE_URL to record profile requests",
		Code:    "AUD001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that arrive without their type, e.g. flattened by a caller.
// The first matching pattern wins, so more specific patterns come first.
var errorPatterns = []errorPattern{
	// File errors (FILE001-FILE007)
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "invalid csv", msg: msgInvalidCSV},
	{pattern: "file path not provided", msg: msgPathRequired},
	{pattern: "empty table", msg: msgEmptyTable},
	{pattern: "file not found", msg: msgNotFound},
	{pattern: "no such file", msg: msgNotFound},
	{pattern: "outside allowed root", msg: msgPathNotAllowed},

	// Profile errors (PRF001-PRF003)
	{pattern: "too many profiles", msg: msgTooManyProfiles},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},

	// Audit errors (AUD001)
	{pattern: "audit log disabled", msg: msgAuditDisabled},

	// Request errors (REQ001-REQ002)
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "Unsupported output format",
			Action:  "Use format=json, yaml or text",
			Code:    "REQ001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  `Send a JSON body such as {"path": "data.csv"}`,
			Code:    "REQ002",
		},
	},

	// Rate limiting (RATE001)
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// Authentication (AUTH001-AUTH002)
	{
		pattern: "api key required",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send the key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "Invalid API key",
			Action:  "Check the key with your administrator",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Known error types and sentinels are recognised anywhere in the wrap
// chain; otherwise the pattern table is searched. If nothing matches, a
// generic fallback message with code ERR000 is returned.
//
// Example:
//
//	_, err := profiler.Profile("missing.csv")
//	msg := MapError(err)
//	// msg.Code == "FILE006"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTypedError(err); ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func mapTypedError(err error) (UserMessage, bool) {
	var (
		notFound *NotFoundError
		parseErr *ParseError
		empty    *EmptyTableError
	)

	switch {
	case errors.As(err, &notFound):
		return msgNotFound, true
	case errors.As(err, &parseErr):
		return msgInvalidCSV, true
	case errors.As(err, &empty):
		return msgEmptyTable, true
	case errors.Is(err, ErrPathRequired):
		return msgPathRequired, true
	case errors.Is(err, ErrPathNotAllowed):
		return msgPathNotAllowed, true
	case errors.Is(err, ErrFileTooLarge):
		return msgFileTooLarge, true
	case errors.Is(err, ErrTooManyProfiles):
		return msgTooManyProfiles, true
	case errors.Is(err, ErrAuditDisabled):
		return msgAuditDisabled, true
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout, true
	case errors.Is(err, context.Canceled):
		return msgCancelled, true
	}
	return UserMessage{}, false
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Example output: "File not found (Code: FILE006). Check the path and file permissions"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback. Callers log non-user-facing errors at error level.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
// The original error is preserved for logging via Unwrap.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
