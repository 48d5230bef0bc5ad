// Command lvhttp-console exercises the lvhttp library outside LabVIEW.
// It drives the same dispatch/handle/error paths the C ABI uses, which
// makes it handy for debugging a VI integration without LabVIEW in the
// loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/nominal-io/lvhttp"
)

func main() {
	var (
		urlFlag     = flag.String("url", "", "Request URL")
		method      = flag.String("method", "GET", "HTTP method (GET, POST, PUT, PATCH, DELETE)")
		headers     = flag.String("headers", "", "Request headers as a JSON object, e.g. '{\"Accept\": \"application/json\"}'")
		body        = flag.String("body", "", "Request body (POST/PUT/PATCH)")
		timeout     = flag.Int("timeout", 30000, "Timeout in milliseconds")
		chunk       = flag.Int("chunk", 4096, "Read chunk size in bytes")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			lvhttp.SetLogger(log)
		}
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: lvhttp-console -url <url> [-method GET] [-headers '{...}'] [-body data] [-timeout ms]")
		fmt.Fprintln(os.Stderr, "       lvhttp-console -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*method, *urlFlag, *headers, *body, *timeout, *chunk); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(method, url, headers, body string, timeoutMS, chunk int) error {
	lib := lvhttp.New()
	defer lib.Shutdown()
	tok := lvhttp.Token(1)

	res, err := dispatch(lib, tok, method, url, headers, body, int32(timeoutMS))
	if err != nil {
		return fmt.Errorf("%s", slotMessage(lib, tok))
	}

	fmt.Printf("Status: %d\n", res.Status)
	fmt.Printf("Length: %d bytes\n\n", res.Len)

	// Stream the body through the cursor the way a VI would.
	buf := make([]byte, chunk)
	for {
		n, err := lib.ReadResponse(tok, res.Handle, buf)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		os.Stdout.Write(buf[:n])
	}
	fmt.Println()

	return lib.FreeResponse(tok, res.Handle)
}

func dispatch(lib *lvhttp.Library, tok lvhttp.Token, method, url, headers, body string, timeoutMS int32) (lvhttp.Result, error) {
	switch strings.ToUpper(method) {
	case "GET":
		return lib.Get(tok, url, headers, timeoutMS)
	case "POST":
		return lib.Post(tok, url, headers, []byte(body), timeoutMS)
	case "PUT":
		return lib.Put(tok, url, headers, []byte(body), timeoutMS)
	case "PATCH":
		return lib.Patch(tok, url, headers, []byte(body), timeoutMS)
	case "DELETE":
		return lib.Delete(tok, url, headers, timeoutMS)
	default:
		return lvhttp.Result{}, fmt.Errorf("unsupported method %q", method)
	}
}

// slotMessage drains the calling token's error slot, growing the buffer if
// the first read reports a required capacity.
func slotMessage(lib *lvhttp.Library, tok lvhttp.Token) string {
	buf := make([]byte, 512)
	n := lib.LastError(tok, buf)
	if n > len(buf) {
		buf = make([]byte, n)
		n = lib.LastError(tok, buf)
	}
	if n <= 0 {
		return "unknown error"
	}
	return string(buf[:n])
}
