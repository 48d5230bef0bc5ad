// Package abi implements the argument marshaling rules of the C-callable
// surface: NUL-terminated string conversion with UTF-8 validation, the
// body pointer/length pairing, and panic conversion at the boundary.
//
// It is deliberately cgo-free. The cshared layer only casts its C-typed
// parameters to unsafe.Pointer before calling in, so every marshaling
// decision stays reachable from ordinary tests.
package abi
