// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error vocabulary of the netbuff containers.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
//
// The container fast paths signal failure through boolean returns and,
// for the serialization buffer, a sticky fail flag; no container method
// returns these values. They exist for callers that need a wrappable
// error.
var (
	ErrInsufficientSpace = errors.New("insufficient space")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrInvalidResize     = errors.New("invalid resize")
	ErrForeignObject     = errors.New("object does not belong to this pool")
	ErrPoolClosed        = errors.New("object pool is closed")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInsufficientSpace
	ErrCodeInsufficientData
	ErrCodeInvalidResize
	ErrCodeForeignObject
	ErrCodePoolClosed
	ErrCodeInvalidArgument
)

// sentinel maps a code to its package-level error value.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInsufficientSpace:
		return ErrInsufficientSpace
	case ErrCodeInsufficientData:
		return ErrInsufficientData
	case ErrCodeInvalidResize:
		return ErrInvalidResize
	case ErrCodeForeignObject:
		return ErrForeignObject
	case ErrCodePoolClosed:
		return ErrPoolClosed
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	}
	return nil
}

// OpError reports a failed container operation with the capacity
// arithmetic that failed it. Every container error is a shortage of the
// same shape: an operation wanted Want bytes or slots and the container
// could offer Have.
type OpError struct {
	Code ErrorCode
	Op   string // failing operation, e.g. "spsc.TryWrite"
	Want int    // bytes or slots requested
	Have int    // bytes or slots available
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v (want %d, have %d)", e.Op, e.Code.sentinel(), e.Want, e.Have)
}

// Unwrap exposes the sentinel so errors.Is(err, ErrInsufficientSpace)
// and friends work on wrapped operation errors.
func (e *OpError) Unwrap() error {
	return e.Code.sentinel()
}

// NewOpError builds an OpError for a failed operation.
func NewOpError(code ErrorCode, op string, want, have int) *OpError {
	return &OpError{Code: code, Op: op, Want: want, Have: have}
}
