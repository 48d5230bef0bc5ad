package errors

import (
	"fmt"
	"strings"
)

// Code is the stable integer value a failure maps to at the C ABI.
// Success is 0; every failure kind has its own negative value. These values
// are part of the caller contract and must never be renumbered.
type Code int32

const (
	CodeOK              Code = 0   // success
	CodeNullPointer     Code = -1  // required pointer argument was null
	CodeInvalidUTF8     Code = -2  // string argument was not valid UTF-8
	CodeInvalidHeaders  Code = -3  // headers argument was not a JSON object of strings
	CodeRequestFailed   Code = -4  // transport-level failure (DNS, connect, TLS, protocol)
	CodeInvalidHandle   Code = -5  // stale, freed, or never-issued handle
	CodeBufferTooSmall  Code = -6  // reserved; get_last_error reports required length instead
	CodeInternal        Code = -7  // allocation or registry failure inside the library
	CodeTimeout         Code = -8  // timeout expired before the request completed
	CodeShutdown        Code = -9  // library already shut down
	CodeInvalidArgument Code = -10 // invalid URL, timeout, or body pointer/length pairing
)

// Op names the operation an error originated from.
type Op string

const (
	OpDispatch Op = "dispatch"
	OpRead     Op = "read"
	OpFree     Op = "free"
	OpShutdown Op = "shutdown"
	OpParse    Op = "parse"
)

// Error is the structured error type used throughout lvhttp.
type Error struct {
	Cause  error
	Op     Op
	Detail string
	Code   Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(codeName(e.Code))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message returns the human-readable text recorded in the calling thread's
// error slot: the detail plus the cause, without the bracketed prefix.
func (e *Error) Message() string {
	switch {
	case e.Detail != "" && e.Cause != nil:
		return e.Detail + ": " + e.Cause.Error()
	case e.Detail != "":
		return e.Detail
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return codeName(e.Code)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two *Errors match when
// their Codes match, so callers can branch on kind regardless of detail.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the ABI code for err. A nil error is CodeOK; an error
// that is not an *Error anywhere in its chain is CodeInternal.
func CodeOf(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if err == nil {
		return CodeOK
	}
	return CodeInternal
}

func codeName(c Code) string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNullPointer:
		return "null_pointer"
	case CodeInvalidUTF8:
		return "invalid_utf8"
	case CodeInvalidHeaders:
		return "invalid_headers"
	case CodeRequestFailed:
		return "request_failed"
	case CodeInvalidHandle:
		return "invalid_handle"
	case CodeBufferTooSmall:
		return "buffer_too_small"
	case CodeInternal:
		return "internal"
	case CodeTimeout:
		return "timeout"
	case CodeShutdown:
		return "shutdown"
	case CodeInvalidArgument:
		return "invalid_argument"
	default:
		return fmt.Sprintf("code(%d)", int32(c))
	}
}

// Convenience constructors for common failure patterns

// NullPointer reports a required pointer argument that was null.
func NullPointer(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Code:   CodeNullPointer,
		Detail: fmt.Sprintf("%s pointer is null", what),
	}
}

// InvalidUTF8 reports a string argument that was not valid UTF-8.
func InvalidUTF8(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Code:   CodeInvalidUTF8,
		Detail: fmt.Sprintf("%s contains invalid UTF-8", what),
	}
}

// InvalidHeaders reports a headers argument that could not be parsed.
func InvalidHeaders(detail string, cause error) *Error {
	return &Error{
		Op:     OpParse,
		Code:   CodeInvalidHeaders,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidArgument reports a locally detected bad argument.
func InvalidArgument(op Op, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Op:     op,
		Code:   CodeInvalidArgument,
		Detail: detail,
	}
}

// RequestFailed wraps a transport-level failure.
func RequestFailed(cause error) *Error {
	return &Error{
		Op:     OpDispatch,
		Code:   CodeRequestFailed,
		Detail: "request failed",
		Cause:  cause,
	}
}

// Timeout reports that the request did not complete within timeoutMS.
func Timeout(timeoutMS int32) *Error {
	return &Error{
		Op:     OpDispatch,
		Code:   CodeTimeout,
		Detail: fmt.Sprintf("request timed out after %d ms", timeoutMS),
	}
}

// InvalidHandle reports use of a stale, freed, or never-issued handle.
func InvalidHandle(op Op, handle uint64) *Error {
	return &Error{
		Op:     op,
		Code:   CodeInvalidHandle,
		Detail: fmt.Sprintf("invalid or already-freed handle: %#x", handle),
	}
}

// Shutdown reports an operation attempted after the library was shut down.
func Shutdown(op Op) *Error {
	return &Error{
		Op:     op,
		Code:   CodeShutdown,
		Detail: "client has been shut down",
	}
}

// Internal wraps an unexpected library-side failure.
func Internal(op Op, cause error) *Error {
	return &Error{
		Op:     op,
		Code:   CodeInternal,
		Detail: "internal error",
		Cause:  cause,
	}
}
