package threadslot

import (
	"sync"
)

// Token identifies one calling thread. The ABI layer derives it from the OS
// thread identity (pthread_self or GetCurrentThreadId); tests use arbitrary
// distinct values.
type Token uint64

// Slots maps calling threads to their most recent error message.
// The zero value is not usable; call NewSlots.
type Slots struct {
	m sync.Map // Token -> string
}

// NewSlots creates an empty slot table.
func NewSlots() *Slots {
	return &Slots{}
}

// Set records msg as tok's most recent error, replacing any previous one.
func (s *Slots) Set(tok Token, msg string) {
	s.m.Store(tok, msg)
}

// Get returns tok's most recent error message, or "" if none was recorded.
func (s *Slots) Get(tok Token) string {
	v, ok := s.m.Load(tok)
	if !ok {
		return ""
	}
	return v.(string)
}

// Read copies tok's message into buf using the fixed ABI contract:
//
//   - buf holds message plus a NUL terminator: the message is copied,
//     NUL-terminated, and Read returns the message length in bytes.
//   - buf is too small: nothing is copied and Read returns the required
//     capacity (message length + 1), so the caller can retry.
//   - no message recorded: buf gets a bare NUL if it has room and Read
//     returns 0.
func (s *Slots) Read(tok Token, buf []byte) int {
	msg := s.Get(tok)
	need := len(msg) + 1
	if len(buf) < need {
		if msg == "" {
			return 0
		}
		return need
	}

	n := copy(buf, msg)
	buf[n] = 0
	return n
}
