package packerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a packaging failure for callers that need a
// machine-readable code rather than a wrapped message chain.
type Kind int

const (
	// KindUnknown marks errors that did not originate in the packaging pipeline.
	KindUnknown Kind = iota
	// KindValidation marks malformed request fields (client input failure).
	KindValidation
	// KindXMLParse marks failures of the XML scanner while reading the project.
	KindXMLParse
	// KindMissingProjectName marks a project document without a usable name attribute.
	KindMissingProjectName
	// KindResourceRead marks a failed read from the resource store.
	KindResourceRead
	// KindInvalidOperatingSystem marks an unsupported target OS identifier.
	KindInvalidOperatingSystem
	// KindStream marks archive write, finalize or drain failures.
	KindStream
)

// Code returns the stable identifier reported to callers.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindXMLParse:
		return "xml_parse"
	case KindMissingProjectName:
		return "missing_project_name"
	case KindResourceRead:
		return "resource_read"
	case KindInvalidOperatingSystem:
		return "invalid_operating_system"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ClientFault reports whether the kind is caused by the request rather than
// the packaging environment. Transports use it to pick a status class.
func (k Kind) ClientFault() bool {
	switch k {
	case KindValidation, KindXMLParse, KindMissingProjectName, KindInvalidOperatingSystem:
		return true
	default:
		return false
	}
}

// Error is a packaging failure with a classification and an optional cause.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message is a human-readable description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// New creates a classified error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap attaches a classification and message to an underlying cause.
// A nil cause yields a nil result so call sites can wrap unconditionally.
func Wrap(kind Kind, message string, err error) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Err)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from an error chain.
// Unclassified errors map to KindUnknown.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return KindUnknown
}

// IsKind reports whether the error chain carries the given classification.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
