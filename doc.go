// Package lvhttp provides a synchronous, handle-based HTTP client designed
// to be exposed to LabVIEW through a C-callable ABI.
//
// LabVIEW's Call Library Function Node can only cross a flat C boundary, has
// no memory-safety model of its own, and dispatches user code onto multiple
// worker threads. This library absorbs all of that: a request becomes an
// opaque handle, response bytes are staged in the library and streamed into
// caller-owned buffers, failures are reported per calling thread, and no
// panic ever crosses the boundary.
//
// # Architecture Overview
//
// The module is organized into small packages with distinct responsibilities:
//
//	lvhttp/           Root package with the Library dispatch facade
//	├── cshared/      The exported C ABI (build with -buildmode=c-shared)
//	├── transport/    One-request-to-completion HTTP execution over net/http
//	├── handle/       Generation-tagged handle registry and response store
//	├── threadslot/   Per-calling-thread last-error slots
//	├── headers/      JSON header-object parsing
//	├── errors/       Structured errors carrying stable ABI return codes
//	└── cmd/          lvhttp-console, an interactive tester for the library
//
// # Quick Start (Go side)
//
//	lib := lvhttp.New()
//	defer lib.Shutdown()
//
//	res, err := lib.Get(tok, "https://example.com/ok", "{}", 5000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf := make([]byte, res.Len)
//	n, _ := lib.ReadResponse(tok, res.Handle, buf)
//	fmt.Println(res.Status, string(buf[:n]))
//	lib.FreeResponse(tok, res.Handle)
//
// The C surface in cshared/ wraps the package-level default Library; build
// it with:
//
//	go build -buildmode=c-shared -o lvhttp.so ./cshared
//
// # Thread Safety
//
// Library is safe for concurrent use from any number of threads. Each verb
// call blocks its calling thread for the lifetime of one request, bounded
// by the request timeout; there is no hidden event loop. Error state is
// scoped to the calling thread's token and is never visible to other
// threads.
//
// # Handle Lifecycle
//
// A handle is Live from the moment a verb call succeeds until it is freed,
// either explicitly or by Shutdown. Reads are forward-only cursor chunks; a
// read returning 0 means the body is exhausted, not that an error occurred.
// Handle values are generation-tagged, so a stale copy held after free can
// never be mistaken for a later response.
package lvhttp
