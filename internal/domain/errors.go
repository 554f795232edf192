package domain

import (
	"context"
	"errors"
	"fmt"
)

// NotFoundError reports user input that does not resolve to a known entity.
// It is surfaced verbatim and never retried.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "entity"
	}
	return fmt.Sprintf("%s %q not found", kind, e.Name)
}

// UpstreamError wraps a failed or malformed provider call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream %s failed", e.Op)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DataShapeError reports a table that is missing expected columns or holds
// values that cannot be aggregated. Unreadable cache files surface as this too.
type DataShapeError struct {
	Table  string
	Reason string
	Err    error
}

func (e *DataShapeError) Error() string {
	msg := fmt.Sprintf("%s table: %s", e.Table, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// ValidationError reports request input rejected before any upstream call.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Upstream wraps err as an UpstreamError unless it already carries a domain
// classification. Context cancellation and deadlines are returned unchanged.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var (
		up    *UpstreamError
		shape *DataShapeError
	)
	if errors.As(err, &up) || errors.As(err, &shape) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var up *UpstreamError
	return errors.As(err, &up)
}

// IsDataShape reports whether err is a DataShapeError.
func IsDataShape(err error) bool {
	var ds *DataShapeError
	return errors.As(err, &ds)
}
