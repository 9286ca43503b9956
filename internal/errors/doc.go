// Package errors provides error handling conventions for the vsave CLI.
//
// This package defines sentinel errors for snapshot operation failures,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, vsmerrors.ErrNoSnapshots) {
//	    // nothing to restore yet
//	}
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (missing snapshot, busy, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and [errors.As]:
//
//	err := vsmerrors.NewUserError(vsmerrors.ErrSaveDirNotFound, "Set a path with: vsave config set save-dir <path>")
//	var exitErr *vsmerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
