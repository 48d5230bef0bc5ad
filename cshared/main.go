// Command cshared builds lvhttp as a C-callable shared library for
// LabVIEW's Call Library Function Node:
//
//	go build -buildmode=c-shared -o lvhttp.so ./cshared
//
// The exported surface is declared in lvhttp.h. All exports return stable
// integer codes (see the errors package); no panic ever crosses the
// boundary, and failures leave a message readable via http_get_last_error
// on the calling thread.
package main

import "C"

func main() {}
