package browser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags a failure with one entry from the closed error taxonomy.
// Every operation result that reports failure carries exactly one kind.
type ErrorKind string

const (
	// ErrInvalidLocatorStrategy reports a locator strategy outside the
	// closed enumeration. Always client-caused, never retried.
	ErrInvalidLocatorStrategy ErrorKind = "InvalidLocatorStrategy"

	// ErrNoActiveSession reports that no session is active and none was
	// named explicitly.
	ErrNoActiveSession ErrorKind = "NoActiveSession"

	// ErrInvalidSession reports an explicitly named session id that is not
	// registered.
	ErrInvalidSession ErrorKind = "InvalidSession"

	// ErrCapacityExceeded reports that the registry is at its configured
	// maximum concurrent session count.
	ErrCapacityExceeded ErrorKind = "CapacityExceeded"

	// ErrUnsupportedBrowser reports a browser kind outside the closed
	// enumeration.
	ErrUnsupportedBrowser ErrorKind = "UnsupportedBrowser"

	// ErrDriverLaunchFailed reports that the external browser launch
	// failed; the underlying message is preserved.
	ErrDriverLaunchFailed ErrorKind = "DriverLaunchFailed"

	// ErrElementTimeout reports a bounded wait that elapsed without the
	// requested condition being satisfied.
	ErrElementTimeout ErrorKind = "ElementTimeout"

	// ErrInteractionRejected reports that the driver refused an action,
	// typically because the element is hidden, disabled or covered.
	ErrInteractionRejected ErrorKind = "InteractionRejected"

	// ErrFileNotFound reports an upload path that does not resolve to an
	// existing file.
	ErrFileNotFound ErrorKind = "FileNotFound"

	// ErrScriptFailed reports that an injected script raised or the driver
	// reported a script error.
	ErrScriptFailed ErrorKind = "ScriptExecutionFailed"

	// ErrUnknown wraps any other underlying failure with its original
	// message preserved.
	ErrUnknown ErrorKind = "Unknown"
)

// Error is the structured failure every operation in this package returns.
// Message is human readable; Hint, when present, suggests a remediation.
type Error struct {
	Kind    ErrorKind
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return e.Message
}

// WithHint attaches a remediation hint and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Classify maps an arbitrary failure onto the closed taxonomy. Errors that
// are already classified pass through unchanged; raw driver errors are
// matched on their message, and anything unrecognized becomes ErrUnknown
// with the original message preserved. This is the only place driver
// failures are translated.
func Classify(err error) *Error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "timeout"):
		return &Error{
			Kind:    ErrElementTimeout,
			Message: msg,
			Hint:    "try increasing the timeout or verifying the locator",
		}
	case strings.Contains(lower, "not visible"),
		strings.Contains(lower, "intercepts pointer"),
		strings.Contains(lower, "not enabled"),
		strings.Contains(lower, "element is not attached"),
		strings.Contains(lower, "outside of the viewport"):
		return &Error{
			Kind:    ErrInteractionRejected,
			Message: msg,
			Hint:    "element may be hidden, disabled or covered by another element",
		}
	default:
		return &Error{Kind: ErrUnknown, Message: msg}
	}
}
