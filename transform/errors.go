package transform

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel causes wrapped by TransformError.
var (
	ErrUnknownMethod    = errors.New("unrecognized transformation")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInsufficientData = errors.New("insufficient data")
)

// TransformError reports a transformation that cannot be computed at all. It
// is returned before any output is produced.
type TransformError struct {
	Method string
	Err    error  // one of the sentinel causes
	Detail string // human readable specifics
}

func (e *TransformError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("transform %q: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("transform %q: %v: %s", e.Method, e.Err, e.Detail)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func newError(method string, cause error, format string, args ...any) *TransformError {
	return &TransformError{Method: method, Err: cause, Detail: fmt.Sprintf(format, args...)}
}

// GapReason describes why an output period is missing.
type GapReason int

// Reasons for a data gap.
const (
	GapMissingOperand GapReason = iota // an input observation is missing
	GapNonPositive                     // a log or fractional power of a non-positive ratio
	GapZeroDivisor                     // the lagged observation is zero
)

func (r GapReason) String() string {
	switch r {
	case GapMissingOperand:
		return "missing operand"
	case GapNonPositive:
		return "non-positive operand"
	case GapZeroDivisor:
		return "zero divisor"
	}
	return "unknown"
}

// DataGap is a non-fatal warning: the output at Period (or at position Index
// for series without timestamps) is missing because of Reason.
type DataGap struct {
	Index  int
	Period time.Time
	Reason GapReason
}
