package sentinel

import (
	"errors"
	"fmt"
	"tripwire/pkg/primitives"
)

// Severity grades how far an abort unwinds: the current statement only, or
// the whole session. Chosen once at configuration time and fixed for the
// process lifetime.
type Severity int

const (
	// SeverityStatement unwinds the current statement.
	SeverityStatement Severity = iota

	// SeveritySession unwinds the whole session.
	SeveritySession
)

// String returns a string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityStatement:
		return "STATEMENT"
	case SeveritySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// AbortError is the one designed abnormal termination of a statement run:
// a monitored row surfaced while the response mode was an abort mode.
// Callers are contractually required to propagate it without recovery; no
// further rows are processed after it is raised.
type AbortError struct {
	// Severity says whether the statement or the session must unwind.
	Severity Severity

	// Table is the monitored relation whose row triggered the abort.
	Table primitives.TableID
}

func newAbortError(severity Severity, table primitives.TableID) *AbortError {
	return &AbortError{
		Severity: severity,
		Table:    table,
	}
}

// Error implements the standard Go error interface.
//
// The format follows the pattern:
// [SENTINEL_ABORT] severity: monitored relation N surfaced in output stream
func (e *AbortError) Error() string {
	return fmt.Sprintf("[SENTINEL_ABORT] %s: monitored relation %d surfaced in output stream",
		e.Severity, e.Table)
}

// SessionFatal reports whether this abort must take the whole session down.
func (e *AbortError) SessionFatal() bool {
	return e.Severity == SeveritySession
}

// IsAbort reports whether err is (or wraps) a sentinel abort.
func IsAbort(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}
