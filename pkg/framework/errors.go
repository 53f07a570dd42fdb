package framework

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
	"github.com/dd0wney/cluso-archmodel/pkg/versioning"
)

// Common sentinel errors
var (
	ErrNodeNotFound       = errors.New("node not found")
	ErrEdgeNotFound       = errors.New("edge not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvariantViolation = errors.New("invariant violation")

	// Re-exported so callers only need this package for errors.Is checks.
	ErrVersionNotFound  = versioning.ErrVersionNotFound
	ErrPermissionDenied = auth.ErrPermissionDenied
)

// ValidationError carries every violation a command's validation found, so
// the presentation layer can show all of them at once.
type ValidationError struct {
	Op         string
	Violations validation.Violations
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Op, e.Violations)
}

// Is reports whether target is the validation sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// AsValidationError unwraps err into a ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// FrameworkError provides structured error information for graph commands.
type FrameworkError struct {
	Op     string // Command that failed (e.g., "delete_node", "connect")
	Entity string // Entity kind ("node", "edge", "version")
	Name   string // Entity name or id (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *FrameworkError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FrameworkError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building FrameworkErrors.
type ErrorBuilder struct {
	err FrameworkError
}

// NewError creates a new error builder with the given command name.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: FrameworkError{Op: op}}
}

// Node sets the entity to "node" with the given name.
func (b *ErrorBuilder) Node(name string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Name = name
	return b
}

// Edge sets the entity to "edge" described by its endpoint pair.
func (b *ErrorBuilder) Edge(a, name string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.Name = a + "--" + name
	return b
}

// Version sets the entity to "version" with the given id.
func (b *ErrorBuilder) Version(id string) *ErrorBuilder {
	b.err.Entity = "version"
	b.err.Name = id
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsNotFound returns true if the error is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrEdgeNotFound) ||
		errors.Is(err, ErrVersionNotFound)
}
