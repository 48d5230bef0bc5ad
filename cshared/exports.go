package main

import "C"

import (
	"net/http"
	"unsafe"

	"github.com/nominal-io/lvhttp"
	"github.com/nominal-io/lvhttp/abi"
	"github.com/nominal-io/lvhttp/errors"
)

func lib() *lvhttp.Library {
	return lvhttp.Default()
}

// report records err on the calling thread and returns its ABI code.
func report(tok lvhttp.Token, err error) C.int {
	_ = lib().Report(tok, err)
	return C.int(errors.CodeOf(err))
}

// recoverToCode converts a panic into an internal-error code. Nothing may
// unwind across the C boundary.
func recoverToCode(tok lvhttp.Token, code *C.int) {
	if r := recover(); r != nil {
		*code = report(tok, abi.PanicError(r))
	}
}

// writeOutputs fills the caller's output slots after a successful dispatch.
func writeOutputs(res lvhttp.Result, handleOut *C.ulonglong, lenOut *C.int, statusOut *C.uint) {
	if handleOut != nil {
		*handleOut = C.ulonglong(res.Handle)
	}
	if lenOut != nil {
		*lenOut = C.int(res.Len)
	}
	if statusOut != nil {
		*statusOut = C.uint(res.Status)
	}
}

// doRequest is the shared verb path behind the five entry points.
func doRequest(tok lvhttp.Token, method string, url, headersJSON *C.char,
	bodyPtr *C.uchar, bodyLen C.int, hasBody bool, timeoutMS C.int,
	handleOut *C.ulonglong, lenOut *C.int, statusOut *C.uint) C.int {

	rawURL, err := abi.CString(unsafe.Pointer(url), "URL")
	if err != nil {
		return report(tok, err)
	}
	hdrs, err := abi.Headers(unsafe.Pointer(headersJSON))
	if err != nil {
		return report(tok, err)
	}
	var body []byte
	if hasBody {
		if body, err = abi.Body(unsafe.Pointer(bodyPtr), int(bodyLen)); err != nil {
			return report(tok, err)
		}
	}

	var res lvhttp.Result
	switch method {
	case http.MethodGet:
		res, err = lib().Get(tok, rawURL, hdrs, int32(timeoutMS))
	case http.MethodPost:
		res, err = lib().Post(tok, rawURL, hdrs, body, int32(timeoutMS))
	case http.MethodPut:
		res, err = lib().Put(tok, rawURL, hdrs, body, int32(timeoutMS))
	case http.MethodPatch:
		res, err = lib().Patch(tok, rawURL, hdrs, body, int32(timeoutMS))
	case http.MethodDelete:
		res, err = lib().Delete(tok, rawURL, hdrs, int32(timeoutMS))
	}
	if err != nil {
		// The library already recorded the message in tok's slot.
		return C.int(errors.CodeOf(err))
	}

	writeOutputs(res, handleOut, lenOut, statusOut)
	return 0
}

//export http_get
func http_get(url, headersJSON *C.char, timeoutMS C.int,
	handleOut *C.ulonglong, responseLenOut *C.int, statusOut *C.uint) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)
	return doRequest(tok, http.MethodGet, url, headersJSON, nil, 0, false,
		timeoutMS, handleOut, responseLenOut, statusOut)
}

//export http_post
func http_post(url, headersJSON *C.char, bodyPtr *C.uchar, bodyLen C.int, timeoutMS C.int,
	handleOut *C.ulonglong, responseLenOut *C.int, statusOut *C.uint) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)
	return doRequest(tok, http.MethodPost, url, headersJSON, bodyPtr, bodyLen, true,
		timeoutMS, handleOut, responseLenOut, statusOut)
}

//export http_put
func http_put(url, headersJSON *C.char, bodyPtr *C.uchar, bodyLen C.int, timeoutMS C.int,
	handleOut *C.ulonglong, responseLenOut *C.int, statusOut *C.uint) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)
	return doRequest(tok, http.MethodPut, url, headersJSON, bodyPtr, bodyLen, true,
		timeoutMS, handleOut, responseLenOut, statusOut)
}

//export http_patch
func http_patch(url, headersJSON *C.char, bodyPtr *C.uchar, bodyLen C.int, timeoutMS C.int,
	handleOut *C.ulonglong, responseLenOut *C.int, statusOut *C.uint) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)
	return doRequest(tok, http.MethodPatch, url, headersJSON, bodyPtr, bodyLen, true,
		timeoutMS, handleOut, responseLenOut, statusOut)
}

//export http_delete
func http_delete(url, headersJSON *C.char, timeoutMS C.int,
	handleOut *C.ulonglong, responseLenOut *C.int, statusOut *C.uint) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)
	return doRequest(tok, http.MethodDelete, url, headersJSON, nil, 0, false,
		timeoutMS, handleOut, responseLenOut, statusOut)
}

//export http_read_response
func http_read_response(handle C.ulonglong, bufPtr *C.uchar, bufLen C.int) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)

	if bufPtr == nil {
		return report(tok, errors.NullPointer(errors.OpRead, "response buffer"))
	}
	if bufLen <= 0 {
		return report(tok, errors.InvalidArgument(errors.OpRead,
			"buffer length must be positive, got %d", int(bufLen)))
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(bufPtr)), int(bufLen))
	n, err := lib().ReadResponse(tok, uint64(handle), buf)
	if err != nil {
		return C.int(errors.CodeOf(err))
	}
	return C.int(n)
}

//export http_free_response
func http_free_response(handle C.ulonglong) (code C.int) {
	tok := threadToken()
	defer recoverToCode(tok, &code)

	if err := lib().FreeResponse(tok, uint64(handle)); err != nil {
		return C.int(errors.CodeOf(err))
	}
	return 0
}

//export http_get_last_error
func http_get_last_error(bufPtr *C.uchar, bufLen C.int) C.int {
	// No slot write here: reporting would clobber the message being read.
	if bufPtr == nil || bufLen <= 0 {
		return C.int(errors.CodeNullPointer)
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(bufPtr)), int(bufLen))
	return C.int(lib().LastError(threadToken(), buf))
}

//export http_pending_responses
func http_pending_responses() C.int {
	return C.int(lib().PendingResponses())
}

//export http_shutdown
func http_shutdown() {
	defer func() {
		// Shutdown has no return slot; a panic here is swallowed.
		_ = recover()
	}()
	lib().Shutdown()
}
