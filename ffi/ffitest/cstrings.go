//go:build linux && cgo

// Package ffitest builds the C-side data structures needed to exercise
// the plugin boundary from Go tests.
package ffitest

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// CStringArray allocates a NULL-terminated C string array from a Go
// slice. The strings may contain arbitrary bytes, including invalid
// UTF-8, but must not contain NUL.
//
// Free the result with FreeCStringArray.
func CStringArray(strings []string) (**c.Char, []*c.Char) {
	cStrings := make([]*c.Char, len(strings))
	for i, s := range strings {
		cStrings[i] = c.CString(s)
	}

	ptrSize := unsafe.Sizeof(uintptr(0))
	array := C.malloc(C.size_t(uintptr(len(strings)+1) * ptrSize))

	for i, cStr := range cStrings {
		*(**c.Char)(unsafe.Add(array, uintptr(i)*ptrSize)) = cStr
	}

	*(**c.Char)(unsafe.Add(array, uintptr(len(strings))*ptrSize)) = nil

	return (**c.Char)(array), cStrings
}

// EmptyCStringArray allocates an array holding only the NULL terminator.
func EmptyCStringArray() **c.Char {
	array := C.malloc(C.size_t(unsafe.Sizeof(uintptr(0))))
	*(**c.Char)(array) = nil

	return (**c.Char)(array)
}

// FreeCStringArray releases an array built by CStringArray or
// EmptyCStringArray.
func FreeCStringArray(array **c.Char, cStrings []*c.Char) {
	for _, cStr := range cStrings {
		C.free(unsafe.Pointer(cStr))
	}

	C.free(unsafe.Pointer(array))
}
