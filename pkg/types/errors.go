package types

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a pipeline failure. Each orchestrator step maps its
// collaborator's error to exactly one kind and aborts; no kind is ever
// silently discarded.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindSignatureMismatch ErrorKind = "signature_mismatch"
	KindChainWriteFailed  ErrorKind = "chain_write_failed"
	KindChainReadFailed   ErrorKind = "chain_read_failed"
	KindNotFound          ErrorKind = "not_found"
	KindEncryptionFailed  ErrorKind = "encryption_failed"
	KindDeliveryFailed    ErrorKind = "delivery_failed"
)

// ClientFacing reports whether the kind may be surfaced to the caller as a
// 4xx-equivalent. Everything else collapses to a generic internal error;
// the specific kind is logged for operators.
func (k ErrorKind) ClientFacing() bool {
	return k == KindInvalidInput || k == KindSignatureMismatch
}

// PipelineError carries the failure kind alongside the underlying cause.
type PipelineError struct {
	Kind ErrorKind
	Err  error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError wraps err with a kind and an explanatory message.
func NewPipelineError(kind ErrorKind, err error, msg string) *PipelineError {
	return &PipelineError{Kind: kind, Err: errors.Wrap(err, msg)}
}

// PipelineErrorf creates a kinded error without an underlying cause.
func PipelineErrorf(kind ErrorKind, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Err: errors.Errorf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
