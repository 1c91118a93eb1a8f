// Package errors provides the sync error taxonomy. A fatal error aborts a
// whole run; a ticket error is recoverable and skips one ticket; a redaction
// error never aborts processing but marks the affected content.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeFatal      ErrorType = "fatal"
	ErrorTypeTicket     ErrorType = "ticket"
	ErrorTypeRedaction  ErrorType = "redaction"
	ErrorTypeValidation ErrorType = "validation"
)

// SyncError represents an application error with additional context
type SyncError struct {
	Type     ErrorType
	Message  string
	TicketID string
	Err      error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	switch {
	case e.TicketID != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (ticket %s): %v", e.Type, e.Message, e.TicketID, e.Err)
	case e.TicketID != "":
		return fmt.Sprintf("%s: %s (ticket %s)", e.Type, e.Message, e.TicketID)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewFatalError creates an error that aborts the whole sync run.
func NewFatalError(message string, err error) *SyncError {
	return &SyncError{
		Type:    ErrorTypeFatal,
		Message: message,
		Err:     err,
	}
}

// NewTicketError creates a per-ticket recoverable error.
func NewTicketError(ticketID, message string, err error) *SyncError {
	return &SyncError{
		Type:     ErrorTypeTicket,
		Message:  message,
		TicketID: ticketID,
		Err:      err,
	}
}

// NewRedactionError creates an error signalling that redaction fell back to
// unredacted text.
func NewRedactionError(message string, err error) *SyncError {
	return &SyncError{
		Type:    ErrorTypeRedaction,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error for bad run inputs.
func NewValidationError(message string) *SyncError {
	return &SyncError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// IsFatal checks whether the error carries the fatal type.
func IsFatal(err error) bool {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Type == ErrorTypeFatal
	}
	return false
}

// IsRedaction checks whether the error carries the redaction type.
func IsRedaction(err error) bool {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Type == ErrorTypeRedaction
	}
	return false
}
