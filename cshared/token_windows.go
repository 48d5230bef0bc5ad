//go:build windows

package main

/*
#include <windows.h>
*/
import "C"

import "github.com/nominal-io/lvhttp"

// threadToken identifies the calling OS thread. LabVIEW dispatches Call
// Library Function Nodes onto its own worker threads; the thread id keys
// the per-thread error slot.
func threadToken() lvhttp.Token {
	return lvhttp.Token(C.GetCurrentThreadId())
}
