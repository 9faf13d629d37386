// Package errors provides error handling for pysharp.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// It also defines the translation error taxonomy. Every construct the
// translator cannot render fails with an *UnsupportedError whose class is
// one of ErrUnsupportedStatement, ErrUnsupportedExpression or
// ErrUnsupportedOperator.
//
// Usage:
//
//	// Wrap with context
//	if err := parse(src); err != nil {
//	    return errors.Wrap(err, "failed to parse input")
//	}
//
//	// Check the class of a translation failure
//	if errors.Is(err, errors.ErrUnsupportedStatement) {
//	    // the input uses a statement kind outside the supported set
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Translation error classes.
// Use these with errors.Is() to classify a failed translation.
var (
	// ErrUnsupportedStatement indicates a statement kind outside the supported set
	ErrUnsupportedStatement = New("unsupported statement")

	// ErrUnsupportedExpression indicates an expression kind outside the supported set
	ErrUnsupportedExpression = New("unsupported expression")

	// ErrUnsupportedOperator indicates an operator tag missing from the operator table
	ErrUnsupportedOperator = New("unsupported operator")
)

// UnsupportedError names the construct that aborted a translation.
type UnsupportedError struct {
	Class error  // one of the ErrUnsupported* sentinels
	Kind  string // node or operator kind, e.g. "Try" or "In"
	Line  int    // 1-based source line, 0 when unknown
}

func (e *UnsupportedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Class.Error(), e.Kind, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Class.Error(), e.Kind)
}

// Unwrap exposes the class so errors.Is matches the sentinel.
func (e *UnsupportedError) Unwrap() error {
	return e.Class
}

// UnsupportedStatement reports a statement kind the translator cannot render.
func UnsupportedStatement(kind string, line int) error {
	return newUnsupported(ErrUnsupportedStatement, kind, line)
}

// UnsupportedExpression reports an expression kind the translator cannot render.
func UnsupportedExpression(kind string, line int) error {
	return newUnsupported(ErrUnsupportedExpression, kind, line)
}

// UnsupportedOperator reports an operator tag missing from the operator table.
func UnsupportedOperator(kind string, line int) error {
	return newUnsupported(ErrUnsupportedOperator, kind, line)
}

func newUnsupported(class error, kind string, line int) error {
	err := WithStack(&UnsupportedError{Class: class, Kind: kind, Line: line})
	return WithHintf(err, "%s is not translated to C#; rewrite it using supported constructs", kind)
}

// IsUnsupported checks if an error is any kind of translation failure.
func IsUnsupported(err error) bool {
	return err != nil && IsAny(err, ErrUnsupportedStatement, ErrUnsupportedExpression, ErrUnsupportedOperator)
}

// UnsupportedKind returns the construct named by a translation failure, or "".
func UnsupportedKind(err error) string {
	var unsupported *UnsupportedError
	if As(err, &unsupported) {
		return unsupported.Kind
	}
	return ""
}
