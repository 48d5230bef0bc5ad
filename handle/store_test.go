package handle

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
)

func TestStore_InsertRead(t *testing.T) {
	s := NewStore()

	h, err := s.Insert([]byte("hello world"), 200)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	n, status, err := s.Len(h)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 11 || status != 200 {
		t.Fatalf("Len = (%d, %d), want (11, 200)", n, status)
	}

	buf := make([]byte, 64)
	got, err := s.Read(h, buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(buf[:got]) != "hello world" {
		t.Fatalf("Read = %q", buf[:got])
	}

	// Exhausted: repeated reads keep returning 0.
	for i := 0; i < 3; i++ {
		got, err = s.Read(h, buf)
		if err != nil || got != 0 {
			t.Fatalf("read after exhaustion = (%d, %v), want (0, nil)", got, err)
		}
	}
}

func TestStore_ChunkedReadIsTransparent(t *testing.T) {
	body := []byte("the quick brown fox jumps over the lazy dog")
	s := NewStore()

	for chunk := 1; chunk <= len(body)+3; chunk++ {
		h, err := s.Insert(append([]byte(nil), body...), 200)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		var out []byte
		buf := make([]byte, chunk)
		for {
			n, err := s.Read(h, buf)
			if err != nil {
				t.Fatalf("chunk %d: Read failed: %v", chunk, err)
			}
			if n == 0 {
				break
			}
			out = append(out, buf[:n]...)
		}

		if !bytes.Equal(out, body) {
			t.Fatalf("chunk %d: got %q, want %q", chunk, out, body)
		}
		if err := s.Free(h); err != nil {
			t.Fatalf("chunk %d: Free failed: %v", chunk, err)
		}
	}
}

func TestStore_FreeIsIdempotentInEffect(t *testing.T) {
	s := NewStore()
	h, _ := s.Insert([]byte("x"), 200)

	if err := s.Free(h); err != nil {
		t.Fatalf("first Free failed: %v", err)
	}
	if err := s.Free(h); err != ErrInvalidHandle {
		t.Fatalf("second Free = %v, want ErrInvalidHandle", err)
	}
	if _, err := s.Read(h, make([]byte, 4)); err != ErrInvalidHandle {
		t.Fatalf("Read after Free = %v, want ErrInvalidHandle", err)
	}
}

func TestStore_NeverIssuedHandle(t *testing.T) {
	s := NewStore()
	s.Insert([]byte("x"), 200)

	for _, h := range []Handle{0, 2, 999, 1 << 40} {
		if _, err := s.Read(h, make([]byte, 4)); err != ErrInvalidHandle {
			t.Fatalf("Read(%#x) = %v, want ErrInvalidHandle", uint64(h), err)
		}
		if err := s.Free(h); err != ErrInvalidHandle {
			t.Fatalf("Free(%#x) = %v, want ErrInvalidHandle", uint64(h), err)
		}
	}
}

func TestStore_StaleHandleAfterReuse(t *testing.T) {
	s := NewStore()

	stale, _ := s.Insert([]byte("old"), 200)
	if err := s.Free(stale); err != nil {
		t.Fatalf("Free failed: %v", err)
	}

	// The slot is recycled with a bumped generation.
	fresh, err := s.Insert([]byte("new"), 201)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if fresh == stale {
		t.Fatalf("recycled handle %#x must not equal stale handle", uint64(fresh))
	}
	if uint32(fresh) != uint32(stale) {
		t.Fatalf("recycled handle should reuse the slot index: %#x vs %#x", uint64(fresh), uint64(stale))
	}

	if _, err := s.Read(stale, make([]byte, 8)); err != ErrInvalidHandle {
		t.Fatalf("stale handle read = %v, want ErrInvalidHandle", err)
	}

	buf := make([]byte, 8)
	n, err := s.Read(fresh, buf)
	if err != nil || string(buf[:n]) != "new" {
		t.Fatalf("fresh handle read = (%q, %v)", buf[:n], err)
	}
}

func TestStore_ConcurrentFreeRace(t *testing.T) {
	s := NewStore()

	for i := 0; i < 100; i++ {
		h, _ := s.Insert([]byte("race"), 200)

		const racers = 8
		var ok atomic.Int32
		var wg sync.WaitGroup
		wg.Add(racers)
		for r := 0; r < racers; r++ {
			go func() {
				defer wg.Done()
				if err := s.Free(h); err == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()

		if ok.Load() != 1 {
			t.Fatalf("iteration %d: %d frees succeeded, want exactly 1", i, ok.Load())
		}
	}
}

func TestStore_ConcurrentInsertRead(t *testing.T) {
	s := NewStore()

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			body := bytes.Repeat([]byte{byte(w)}, 32)
			for i := 0; i < 50; i++ {
				h, err := s.Insert(append([]byte(nil), body...), 200)
				if err != nil {
					t.Errorf("Insert failed: %v", err)
					return
				}
				var out []byte
				buf := make([]byte, 7)
				for {
					n, err := s.Read(h, buf)
					if err != nil {
						t.Errorf("Read failed: %v", err)
						return
					}
					if n == 0 {
						break
					}
					out = append(out, buf[:n]...)
				}
				if !bytes.Equal(out, body) {
					t.Errorf("worker %d: body corrupted", w)
					return
				}
				if err := s.Free(h); err != nil {
					t.Errorf("Free failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if s.Live() != 0 {
		t.Fatalf("expected 0 live handles, got %d", s.Live())
	}
}

func TestStore_Close(t *testing.T) {
	s := NewStore()
	h1, _ := s.Insert([]byte("a"), 200)
	h2, _ := s.Insert([]byte("b"), 200)

	if freed := s.Close(); freed != 2 {
		t.Fatalf("Close freed %d, want 2", freed)
	}
	// Second close is a no-op.
	if freed := s.Close(); freed != 0 {
		t.Fatalf("second Close freed %d, want 0", freed)
	}

	for _, h := range []Handle{h1, h2} {
		if _, err := s.Read(h, make([]byte, 4)); err != ErrInvalidHandle {
			t.Fatalf("Read after Close = %v, want ErrInvalidHandle", err)
		}
	}

	if _, err := s.Insert([]byte("c"), 200); err != ErrClosed {
		t.Fatalf("Insert after Close = %v, want ErrClosed", err)
	}
}

func TestStore_Live(t *testing.T) {
	s := NewStore()
	if s.Live() != 0 {
		t.Fatal("fresh store should have 0 live handles")
	}
	h, _ := s.Insert([]byte("x"), 200)
	if s.Live() != 1 {
		t.Fatalf("Live = %d, want 1", s.Live())
	}
	s.Free(h)
	if s.Live() != 0 {
		t.Fatalf("Live = %d, want 0", s.Live())
	}
}

func TestStore_ZeroCapacityBuffer(t *testing.T) {
	s := NewStore()
	h, _ := s.Insert([]byte("data"), 200)

	// A zero-length buffer copies nothing and does not advance the cursor.
	n, err := s.Read(h, nil)
	if err != nil || n != 0 {
		t.Fatalf("Read(nil) = (%d, %v)", n, err)
	}

	buf := make([]byte, 16)
	n, err = s.Read(h, buf)
	if err != nil || string(buf[:n]) != "data" {
		t.Fatalf("full body still readable, got (%q, %v)", buf[:n], err)
	}
}

func TestStore_FullIsNotClosed(t *testing.T) {
	s := NewStore()
	s.limit = 2

	h1, err := s.Insert([]byte("a"), 200)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := s.Insert([]byte("b"), 200); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Exhaustion is its own failure; it must not look like a closed store.
	if _, err := s.Insert([]byte("c"), 200); err != ErrFull {
		t.Fatalf("Insert at capacity = %v, want ErrFull", err)
	}

	// Freeing a slot makes room again through the free list.
	if err := s.Free(h1); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	if _, err := s.Insert([]byte("c"), 200); err != nil {
		t.Fatalf("Insert after Free failed: %v", err)
	}
}
