// Package threadslot records the most recent error message per calling
// thread.
//
// The host runtime dispatches operations onto multiple worker threads, so a
// single global error slot would race and misattribute failures. Go has no
// usable thread-local storage, and cgo calls pin the goroutine to the
// calling OS thread only for the duration of one call, so slots are keyed
// by an opaque Token derived from the OS thread identity by the ABI layer.
//
// Slots are created lazily on first failure and never evicted; the leak is
// bounded by the number of distinct calling threads. A slot is overwritten
// by every failure on its thread and is deliberately not cleared by
// successful calls: reading a stale message after a success is part of the
// contract.
package threadslot
