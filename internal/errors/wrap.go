package errors

import crdberrors "github.com/cockroachdb/errors"

// Re-exports of cockroachdb/errors helpers so command code needs only a
// single errors import.

// New creates an error with a stack trace attached.
func New(msg string) error { return crdberrors.New(msg) }

// Newf creates a formatted error with a stack trace attached.
func Newf(format string, args ...any) error { return crdberrors.Newf(format, args...) }

// Wrap annotates err with a message, preserving the cause chain.
// Returns nil if err is nil.
func Wrap(err error, msg string) error { return crdberrors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message, preserving the cause chain.
// Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdberrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return crdberrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdberrors.As(err, target) }
