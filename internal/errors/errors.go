// Package errors provides structured error types for link-skills.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes for link-skills operations.
const (
	// Config errors
	CodeConfigMissingField = "CONFIG_001" // Missing required field
	CodeConfigInvalidValue = "CONFIG_002" // Invalid value

	// Location errors
	CodeProjectNotFound    = "PROJECT_001" // No package.json in any ancestor
	CodeGitRootNotFound    = "GIT_001"     // No .git in any ancestor
	CodeCatalogUnavailable = "CATALOG_001" // Shared skills package not installed

	// Reconciliation errors
	CodeTargetUnwritable     = "TARGET_001" // Target directory cannot be created
	CodeEntryOperationFailed = "ENTRY_001"  // Per-entry filesystem failure
	CodeMismatch             = "CHECK_001"  // Check-mode discrepancy

	// Hook errors
	CodeHookTemplateMissing = "HOOK_001" // Hook template cannot be read
	CodeHookWriteFailed     = "HOOK_002" // Hook file cannot be written
)

// SkillError is the structured error type for link-skills operations.
type SkillError struct {
	Code    string         `json:"code"`              // Error code (e.g., "CATALOG_001")
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Context (skill, path, etc.)
	Cause   error          `json:"-"`                 // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *SkillError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SkillError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *SkillError) WithDetail(key string, value any) *SkillError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *SkillError) WithCause(err error) *SkillError {
	e.Cause = err
	return e
}

// MarshalJSON implements json.Marshaler with cause error message.
func (e *SkillError) MarshalJSON() ([]byte, error) {
	type alias SkillError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new SkillError.
func New(code, message string) *SkillError {
	return &SkillError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new SkillError with formatted message.
func Newf(code, format string, args ...any) *SkillError {
	return &SkillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a SkillError.
func Wrap(code, message string, err error) *SkillError {
	return &SkillError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted SkillError.
func Wrapf(code string, err error, format string, args ...any) *SkillError {
	return &SkillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// --- Config Errors ---

// ConfigMissingField creates an error for missing config field.
func ConfigMissingField(field string) *SkillError {
	return Newf(CodeConfigMissingField, "missing required config field: %s", field).
		WithDetail("field", field)
}

// ConfigInvalidValue creates an error for invalid config value.
func ConfigInvalidValue(field string, value any, reason string) *SkillError {
	return Newf(CodeConfigInvalidValue, "invalid config value for %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// --- Location Errors ---

// ProjectNotFound creates an error for a missing project root.
func ProjectNotFound(start string) *SkillError {
	return Newf(CodeProjectNotFound, "could not find package.json above %s; run from within a Node.js project", start).
		WithDetail("start", start)
}

// GitRootNotFound creates an error for a missing git repository.
func GitRootNotFound(start string) *SkillError {
	return Newf(CodeGitRootNotFound, "not in a git repository: %s", start).
		WithDetail("start", start)
}

// CatalogUnavailable creates an error for a shared skills package that is not installed.
func CatalogUnavailable(projectRoot string, packages []string) *SkillError {
	return Newf(CodeCatalogUnavailable, "shared skills package not found in %s/node_modules (looked for %v)", projectRoot, packages).
		WithDetail("project_root", projectRoot).
		WithDetail("packages", packages)
}

// --- Reconciliation Errors ---

// TargetUnwritable creates an error for a target directory that cannot be created.
func TargetUnwritable(dir string, err error) *SkillError {
	return Wrap(CodeTargetUnwritable, "cannot create target directory "+dir, err).
		WithDetail("path", dir)
}

// EntryOperationFailed creates an error for a single failed link operation.
func EntryOperationFailed(skill, op, path string, err error) *SkillError {
	return Wrapf(CodeEntryOperationFailed, err, "%s %s", op, path).
		WithDetail("skill", skill).
		WithDetail("op", op).
		WithDetail("path", path)
}

// Mismatch creates an error for a link that does not point where it should.
func Mismatch(skill, path string) *SkillError {
	return Newf(CodeMismatch, "link %s for skill %s is missing or stale", path, skill).
		WithDetail("skill", skill).
		WithDetail("path", path)
}

// --- Hook Errors ---

// HookTemplateMissing creates an error for an unreadable hook template.
func HookTemplateMissing(path string, err error) *SkillError {
	return Wrap(CodeHookTemplateMissing, "could not read post-merge hook template", err).
		WithDetail("path", path)
}

// HookWriteFailed creates an error for a hook file that cannot be written.
func HookWriteFailed(path string, err error) *SkillError {
	return Wrap(CodeHookWriteFailed, "failed to write hook", err).
		WithDetail("path", path)
}

// HasCode checks if an error is a SkillError with the given code.
// It handles wrapped errors by unwrapping to find a SkillError.
func HasCode(err error, code string) bool {
	var serr *SkillError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is a SkillError, empty string otherwise.
// It handles wrapped errors by unwrapping to find a SkillError.
func Code(err error) string {
	var serr *SkillError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}
