package result

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of domain failure categories.
type ErrorKind string

const (
	// KindValidation marks malformed or out-of-range input. Always fixable
	// by correcting the request.
	KindValidation ErrorKind = "VALIDATION_ERROR"
	// KindBusinessRule marks well-formed input that violates a stated
	// business rule. The caller must change the scenario, not the shape.
	KindBusinessRule ErrorKind = "BUSINESS_RULE_VIOLATION"
	// KindInvariant marks operations that would corrupt an aggregate's
	// internal consistency. Currently defined but never constructed by
	// domain code; kept in the taxonomy for aggregate-internal guards.
	KindInvariant ErrorKind = "INVARIANT_VIOLATION"
)

// DomainError carries a machine-readable code plus a metadata bag.
type DomainError struct {
	Kind     ErrorKind
	Code     string
	Message  string
	Metadata map[string]any
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two domain errors by kind and code, so sentinel instances work
// with errors.Is.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Code == other.Code
}

// WithMeta returns a copy carrying an extra metadata entry.
func (e *DomainError) WithMeta(key string, value any) *DomainError {
	meta := make(map[string]any, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, Metadata: meta}
}

func NewValidationError(code, message string, metadata map[string]any) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message, Metadata: metadata}
}

func NewBusinessRuleViolation(code, message string, metadata map[string]any) *DomainError {
	return &DomainError{Kind: KindBusinessRule, Code: code, Message: message, Metadata: metadata}
}

func NewInvariantViolation(code, message string, metadata map[string]any) *DomainError {
	return &DomainError{Kind: KindInvariant, Code: code, Message: message, Metadata: metadata}
}

// IsKind reports whether err wraps a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// AsDomainError unwraps err into a DomainError, nil when it is not one.
func AsDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
