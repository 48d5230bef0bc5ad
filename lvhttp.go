package lvhttp

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nominal-io/lvhttp/errors"
	"github.com/nominal-io/lvhttp/handle"
	"github.com/nominal-io/lvhttp/headers"
	"github.com/nominal-io/lvhttp/threadslot"
	"github.com/nominal-io/lvhttp/transport"
)

// Token identifies the calling thread for error reporting. The ABI layer
// derives it from the OS thread identity.
type Token = threadslot.Token

// Result is the successful outcome of a verb call: the bound handle, the
// response body length in bytes, and the HTTP status code.
type Result struct {
	Handle uint64
	Len    int
	Status uint32
}

// Library is the dispatch facade: it validates arguments, runs requests
// through a Transport, and stages successful responses behind handles.
// Safe for concurrent use. Shutdown is terminal.
type Library struct {
	transport transport.Transport
	store     *handle.Store
	slots     *threadslot.Slots
	log       *zap.Logger

	mu       sync.RWMutex
	inflight sync.WaitGroup
	closed   bool
}

// Option configures a Library.
type Option func(*Library)

// WithTransport replaces the default net/http transport. Tests use this to
// inject stubs.
func WithTransport(t transport.Transport) Option {
	return func(l *Library) {
		l.transport = t
	}
}

// WithLogger sets the library's logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Library) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a Library with a shared pooled transport.
func New(opts ...Option) *Library {
	l := &Library{
		transport: transport.NewClient(),
		store:     handle.NewStore(),
		slots:     threadslot.NewSlots(),
		log:       Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get performs an HTTP GET request.
func (l *Library) Get(tok Token, rawURL, headersJSON string, timeoutMS int32) (Result, error) {
	return l.dispatch(tok, http.MethodGet, rawURL, headersJSON, nil, timeoutMS)
}

// Post performs an HTTP POST request with the given body.
func (l *Library) Post(tok Token, rawURL, headersJSON string, body []byte, timeoutMS int32) (Result, error) {
	return l.dispatch(tok, http.MethodPost, rawURL, headersJSON, body, timeoutMS)
}

// Put performs an HTTP PUT request with the given body.
func (l *Library) Put(tok Token, rawURL, headersJSON string, body []byte, timeoutMS int32) (Result, error) {
	return l.dispatch(tok, http.MethodPut, rawURL, headersJSON, body, timeoutMS)
}

// Patch performs an HTTP PATCH request with the given body.
func (l *Library) Patch(tok Token, rawURL, headersJSON string, body []byte, timeoutMS int32) (Result, error) {
	return l.dispatch(tok, http.MethodPatch, rawURL, headersJSON, body, timeoutMS)
}

// Delete performs an HTTP DELETE request.
func (l *Library) Delete(tok Token, rawURL, headersJSON string, timeoutMS int32) (Result, error) {
	return l.dispatch(tok, http.MethodDelete, rawURL, headersJSON, nil, timeoutMS)
}

// dispatch is the uniform verb path: validate locally, execute through the
// transport with the timeout as a context deadline, bind the response to a
// handle. Every failure is recorded in tok's error slot before returning.
func (l *Library) dispatch(tok Token, method, rawURL, headersJSON string, body []byte, timeoutMS int32) (Result, error) {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return Result{}, l.report(tok, errors.Shutdown(errors.OpDispatch))
	}
	l.inflight.Add(1)
	l.mu.RUnlock()
	defer l.inflight.Done()

	if err := validateURL(rawURL); err != nil {
		return Result{}, l.report(tok, err)
	}
	if timeoutMS <= 0 {
		return Result{}, l.report(tok, errors.InvalidArgument(errors.OpDispatch,
			"timeout_ms must be positive, got %d", timeoutMS))
	}
	hdr, err := headers.Parse(headersJSON)
	if err != nil {
		return Result{}, l.report(tok, err)
	}

	id := uuid.NewString()
	l.log.Debug("dispatching request",
		zap.String("id", id),
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int32("timeout_ms", timeoutMS),
		zap.Int("body_len", len(body)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutMS)*time.Millisecond)
	defer cancel()

	resp, err := l.transport.Do(ctx, &transport.Request{
		Method: method,
		URL:    rawURL,
		Header: hdr,
		Body:   body,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Result{}, l.report(tok, errors.Timeout(timeoutMS))
		}
		return Result{}, l.report(tok, errors.RequestFailed(err))
	}

	h, err := l.store.Insert(resp.Body, resp.Status)
	if err != nil {
		if err == handle.ErrClosed {
			return Result{}, l.report(tok, errors.Shutdown(errors.OpDispatch))
		}
		return Result{}, l.report(tok, errors.Internal(errors.OpDispatch, err))
	}

	l.log.Debug("request complete",
		zap.String("id", id),
		zap.Uint32("status", resp.Status),
		zap.Int("response_len", len(resp.Body)),
		zap.Uint64("handle", uint64(h)))

	return Result{
		Handle: uint64(h),
		Len:    len(resp.Body),
		Status: resp.Status,
	}, nil
}

// ReadResponse copies up to len(buf) bytes of the response body behind h
// into buf, starting at the handle's cursor, and advances the cursor.
// A return of 0 means the body is exhausted; the view is forward-only.
func (l *Library) ReadResponse(tok Token, h uint64, buf []byte) (int, error) {
	n, err := l.store.Read(handle.Handle(h), buf)
	if err != nil {
		return 0, l.report(tok, errors.InvalidHandle(errors.OpRead, h))
	}
	return n, nil
}

// FreeResponse releases the response behind h. Freeing an already-freed or
// never-issued handle reports an invalid-handle failure; it is never
// undefined behavior.
func (l *Library) FreeResponse(tok Token, h uint64) error {
	if err := l.store.Free(handle.Handle(h)); err != nil {
		return l.report(tok, errors.InvalidHandle(errors.OpFree, h))
	}
	return nil
}

// LastError copies the calling thread's most recent error message into buf.
// See threadslot.Slots.Read for the exact contract.
func (l *Library) LastError(tok Token, buf []byte) int {
	return l.slots.Read(tok, buf)
}

// PendingResponses returns the number of handles still live. Useful for
// detecting handle leaks during VI development.
func (l *Library) PendingResponses() int {
	return l.store.Live()
}

// Shutdown closes the library: new verb calls fail with the shutdown code,
// in-flight calls are waited for, every live handle is freed, and the
// transport releases its resources. Safe to call more than once; there is
// no re-initialization path.
func (l *Library) Shutdown() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.inflight.Wait()
	freed := l.store.Close()
	if err := l.transport.Close(); err != nil {
		l.log.Warn("transport close failed", zap.Error(err))
	}

	l.log.Info("library shut down", zap.Int("freed_handles", freed))
}

// Report records err in tok's error slot and returns err unchanged. The
// ABI layer uses it for failures detected during argument marshaling,
// before the core is reached.
func (l *Library) Report(tok Token, err error) error {
	return l.report(tok, err)
}

func (l *Library) report(tok Token, err error) error {
	msg := err.Error()
	if e, ok := err.(*errors.Error); ok {
		msg = e.Message()
	}
	l.slots.Set(tok, msg)
	l.log.Debug("operation failed",
		zap.Uint64("thread", uint64(tok)),
		zap.Int32("code", int32(errors.CodeOf(err))),
		zap.String("message", msg))
	return err
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return errors.InvalidArgument(errors.OpDispatch, "URL must not be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.InvalidArgument(errors.OpDispatch, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.InvalidArgument(errors.OpDispatch,
			"URL must be absolute with an http or https scheme, got %q", rawURL)
	}
	if u.Host == "" {
		return errors.InvalidArgument(errors.OpDispatch, "URL %q has no host", rawURL)
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the process-wide Library behind the C ABI. It is created
// on first use; after its Shutdown the process must be restarted to issue
// further requests.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = New()
	})
	return defaultLib
}
