// Package errors provides the structured error type used throughout lvhttp.
//
// Every error carries a Code, the stable integer value returned across the
// C ABI, and an Op naming the operation that failed. Codes are negative;
// 0 is success. The full table is documented on the Code type.
//
// Use the convenience constructors for common failures:
//
//	err := errors.InvalidArgument(errors.OpDispatch, "timeout_ms must be positive")
//	err := errors.RequestFailed(cause)
//
// All errors implement the standard error interface and support errors.Is
// (two *Errors match when their Codes match). CodeOf extracts the ABI code
// from any error chain.
package errors
