package pipeline

import (
	"errors"
	"fmt"
)

// Domain enumerates the possible error domains
type Domain string

const (
	DomainConfig Domain = "config"
	DomainTool   Domain = "tool"
	DomainCache  Domain = "cache"
	DomainRun    Domain = "run"
)

// Code enumerates possible error codes for each domain
type Code string

const (
	CodeNoInstallation Code = "no_installation"
	CodeInvalidStep    Code = "invalid_step"

	CodeToolNotFound Code = "tool_not_found"

	CodeCacheUnreadable Code = "cache_unreadable"
	CodeVariableMissing Code = "variable_missing"

	CodeProcessFailed Code = "process_failed"
	CodeWorkspace     Code = "workspace_error"
	CodeCancelled     Code = "cancelled"
)

// DomainError represents a pipeline error with a domain and code.
type DomainError struct {
	ErrDomain Domain
	ErrCode   Code
	Message   string
	Cause     error
}

// Error returns the error message.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.ErrDomain, e.ErrCode, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the cause of this error
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// New creates a new DomainError.
func New(domain Domain, code Code, message string) *DomainError {
	return &DomainError{ErrDomain: domain, ErrCode: code, Message: message}
}

// Wrap wraps an error with domain context.
func Wrap(domain Domain, code Code, message string, err error) *DomainError {
	return &DomainError{ErrDomain: domain, ErrCode: code, Message: message, Cause: err}
}

// Is checks if an error is a DomainError with the specified domain and code.
func Is(err error, domain Domain, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ErrDomain == domain && de.ErrCode == code
	}
	return false
}

// ExitError reports a process that terminated with a non-zero exit code.
// Tool is the basename of the binary that was invoked.
type ExitError struct {
	Tool     string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with error code %d", e.Tool, e.ExitCode)
}

// Common errors
var (
	ErrNoInstallation = New(DomainConfig, CodeNoInstallation, "no tool installation selected")
)
