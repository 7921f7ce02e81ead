package ffi

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// DecodeArgv converts a NULL-terminated C string array into a Go slice,
// preserving order. argv[0] is the plugin's shared object path, the
// remaining entries are the options from the plugin directive in the
// daemon config.
//
// Every element is copied and validated; a string that is not valid
// UTF-8 fails the whole decode with ErrInvalidUTF8.
func DecodeArgv(argv **c.Char) ([]string, error) {
	if argv == nil {
		return nil, fmt.Errorf("argv: %w", ErrNullPointer)
	}

	ptrs := unsafe.Slice(argv, vectorLen(argv))
	args := make([]string, len(ptrs))

	for i, s := range ptrs {
		str := c.GoString(s)
		if !utf8.ValidString(str) {
			return nil, fmt.Errorf("argv[%d]: %w", i, ErrInvalidUTF8)
		}

		args[i] = str
	}

	return args, nil
}

// vectorLen counts the entries of a NULL-terminated pointer array.
func vectorLen(vec **c.Char) int {
	count := 0
	for p := vec; *p != nil; p = (**c.Char)(unsafe.Add(unsafe.Pointer(p), unsafe.Sizeof(*p))) {
		count++
	}

	return count
}
