//go:build !windows

package main

/*
#include <pthread.h>

// pthread_t is an arithmetic type on Linux and a pointer on Darwin; the
// cast normalizes both into a 64-bit token.
static unsigned long long lvhttp_thread_token(void) {
	return (unsigned long long)pthread_self();
}
*/
import "C"

import "github.com/nominal-io/lvhttp"

// threadToken identifies the calling OS thread. A C-to-Go call runs locked
// to the thread that made it, so the token is stable for the duration of
// one ABI call, which is all the error-slot contract needs.
func threadToken() lvhttp.Token {
	return lvhttp.Token(C.lvhttp_thread_token())
}
