package abi

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/nominal-io/lvhttp/errors"
)

// CString converts a required C string argument. A null pointer and invalid
// UTF-8 are distinct failures with their own codes.
func CString(p unsafe.Pointer, what string) (string, error) {
	if p == nil {
		return "", errors.NullPointer(errors.OpDispatch, what)
	}
	s := goString(p)
	if !utf8.ValidString(s) {
		return "", errors.InvalidUTF8(errors.OpDispatch, what)
	}
	return s, nil
}

// Headers converts the optional headers argument; null means no headers.
func Headers(p unsafe.Pointer) (string, error) {
	if p == nil {
		return "", nil
	}
	return CString(p, "headers JSON")
}

// Body interprets a body pointer/length pair and copies the bytes out of
// the caller-owned memory. null+0 is an empty body; a null pointer with a
// nonzero length, or a non-null pointer with a non-positive length, is an
// invalid-argument failure.
func Body(p unsafe.Pointer, n int) ([]byte, error) {
	if p == nil {
		if n != 0 {
			return nil, errors.InvalidArgument(errors.OpDispatch,
				"body pointer is null but body_len is %d", n)
		}
		return nil, nil
	}
	if n <= 0 {
		return nil, errors.InvalidArgument(errors.OpDispatch,
			"body pointer is non-null but body_len is %d", n)
	}
	body := make([]byte, n)
	copy(body, unsafe.Slice((*byte)(p), n))
	return body, nil
}

// PanicError wraps a recovered panic value as an internal failure. Nothing
// may unwind across the C boundary, so every export shim funnels its
// recover() through this.
func PanicError(r any) error {
	return errors.Internal(errors.OpDispatch, fmt.Errorf("panic: %v", r))
}

// goString reads the NUL-terminated bytes at p.
func goString(p unsafe.Pointer) string {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}
