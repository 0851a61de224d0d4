package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags a pipeline failure so callers can branch on the kind by
// value instead of matching error types.
type ErrorKind string

const (
	// KindConfiguration: bad exam/subject/chapter/difficulty/count.
	// Always fatal to the call and checked before any generation work.
	KindConfiguration ErrorKind = "configuration"
	// KindParsing: no questions extractable from LLM output. Fatal to a
	// subject, recoverable at the batch level.
	KindParsing ErrorKind = "parsing"
	// KindValidation: a record failed structural rules.
	KindValidation ErrorKind = "validation"
	// KindInsufficientQuestions: fewer valid questions than requested.
	KindInsufficientQuestions ErrorKind = "insufficient_questions"
	// KindLLMService: opaque upstream LLM failure (timeout, rate limit,
	// service error).
	KindLLMService ErrorKind = "llm_service"
)

// Error is the tagged pipeline error. Subject is set when the failure is
// scoped to one subject's generation; Details carries structured context
// (counts, retry-after hints) surfaced in API error responses.
type Error struct {
	Kind    ErrorKind
	Subject string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Subject, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a tagged error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithSubject scopes the error to a subject's generation.
func (e *Error) WithSubject(subject string) *Error {
	e.Subject = subject
	return e
}

// WithDetail attaches one structured detail value.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WrapError tags an underlying error without losing the chain.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	e := NewError(kind, format, args...)
	e.Err = err
	return e
}

// IsKind reports whether err (or anything it wraps) is a tagged error of
// the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// KindOf returns the tag of err, or "" for untagged errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// ErrorResponse is the structured failure shape returned at the process
// boundary. Callers never see a raw stack trace.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}
