package handle

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Insert after the store has been closed.
	ErrClosed = errors.New("response store closed")
	// ErrFull is returned by Insert when every slot is occupied.
	ErrFull = errors.New("response store full")
	// ErrInvalidHandle is returned for handles that are stale, freed, or
	// were never issued by this store.
	ErrInvalidHandle = errors.New("invalid handle")
)

// Handle identifies one stored response. The zero value is never valid.
type Handle uint64

// maxSlots bounds the slot array so the index always fits the low 32 bits.
const maxSlots = 1<<32 - 2

// Store owns completed response bodies keyed by handle.
type Store struct {
	entries  []entry
	freeList []uint32
	limit    int
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	body   []byte
	cursor int
	status uint32
	gen    uint32
	live   bool
}

// NewStore creates an empty response store.
func NewStore() *Store {
	return &Store{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
		limit:    maxSlots,
	}
}

func packHandle(idx, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx+1))
}

// lookup resolves a handle to its slot index. Callers must hold the lock.
func (s *Store) lookup(h Handle) (uint32, bool) {
	low := uint32(h)
	if low == 0 {
		return 0, false
	}
	idx := low - 1
	if int(idx) >= len(s.entries) {
		return 0, false
	}
	e := &s.entries[idx]
	if !e.live || e.gen != uint32(h>>32) {
		return 0, false
	}
	return idx, true
}

// Insert binds a response body and status to a fresh handle.
func (s *Store) Insert(body []byte, status uint32) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	if len(s.freeList) > 0 {
		idx := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		e := &s.entries[idx]
		e.body = body
		e.cursor = 0
		e.status = status
		e.live = true
		return packHandle(idx, e.gen), nil
	}

	if len(s.entries) >= s.limit {
		return 0, ErrFull
	}

	s.entries = append(s.entries, entry{
		body:   body,
		status: status,
		live:   true,
	})
	return packHandle(uint32(len(s.entries)-1), 0), nil
}

// Read copies up to len(buf) bytes from the handle's cursor into buf and
// advances the cursor by the count copied. A return of 0 with a nil error
// means the body is exhausted; repeated reads keep returning 0 until the
// handle is freed. Read never touches memory outside buf.
func (s *Store) Read(h Handle, buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.lookup(h)
	if !ok {
		return 0, ErrInvalidHandle
	}

	e := &s.entries[idx]
	n := copy(buf, e.body[e.cursor:])
	e.cursor += n
	return n, nil
}

// Len returns the total body length and status for a live handle.
func (s *Store) Len(h Handle) (int, uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.lookup(h)
	if !ok {
		return 0, 0, ErrInvalidHandle
	}
	e := &s.entries[idx]
	return len(e.body), e.status, nil
}

// Free releases the response behind h. Exactly one concurrent Free on the
// same handle succeeds; the rest observe ErrInvalidHandle.
func (s *Store) Free(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.lookup(h)
	if !ok {
		return ErrInvalidHandle
	}

	s.release(idx)
	return nil
}

// release retires a slot. Callers must hold the write lock.
func (s *Store) release(idx uint32) {
	e := &s.entries[idx]
	e.body = nil
	e.cursor = 0
	e.status = 0
	e.live = false
	e.gen++
	s.freeList = append(s.freeList, idx)
}

// Live returns the number of handles currently bound, mostly useful for
// spotting leaked handles during VI development.
func (s *Store) Live() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.entries {
		if s.entries[i].live {
			count++
		}
	}
	return count
}

// Close invalidates every live handle and rejects further inserts.
// It returns the number of handles that were still live.
func (s *Store) Close() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true

	freed := 0
	for i := range s.entries {
		if s.entries[i].live {
			s.release(uint32(i))
			freed++
		}
	}
	return freed
}
