package wallet

import (
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
)

var (
	// ErrShape is returned when a response field has an unexpected type or value
	ErrShape         = errors.New("unexpected response shape")
	ErrMissingType   = errors.New("transaction type cannot be empty")
	ErrMissingID     = errors.New("transaction id cannot be empty")
	ErrUnknownTxType = errors.New("unrecognized transaction type")
	ErrUnknownField  = errors.New("unrecognized field")
	ErrAliasConflict = errors.New("field aliases disagree")

	// ErrConsistency is returned when responses break an expected 1:1 correspondence
	ErrConsistency = errors.New("inconsistent response")

	ErrMergeConflict = errors.New("conflicting transaction field")

	ErrInvalidConfig = errors.New("invalid configuration")

	ErrNotFound = errors.New("not found")
)

type ShapeError struct {
	Field string
	Value any
	Err   error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q: %s: %v", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("field %q: unexpected value %#v", e.Field, e.Value)
}

func (e *ShapeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrShape, e.Err}
	}
	return []error{ErrShape}
}

type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return e.Message
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}

func inconsistent(format string, args ...any) error {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}

type ConflictError struct {
	ID       types.Hash
	Field    string
	Existing any
	Incoming any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("transaction %s: field %s has %v, received %v", e.ID, e.Field, e.Existing, e.Incoming)
}

func (e *ConflictError) Unwrap() error {
	return ErrMergeConflict
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
