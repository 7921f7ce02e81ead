package ffi

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// Env holds the daemon environment for one callback invocation.
type Env map[string]string

// DecodeEnv converts a NULL-terminated C string array of "KEY=value"
// entries into an Env.
//
// Each entry is split at the first '='. Keys are trimmed of surrounding
// whitespace, values are kept verbatim (they may contain further '='
// characters or be empty). A non-empty entry without '=' or with an
// empty key fails with ErrMalformedEnv. Empty entries are skipped; the
// daemon emits them for unset slots.
//
// When the same key appears more than once the last occurrence wins,
// matching how the daemon itself layers its env sets.
func DecodeEnv(envp **c.Char) (Env, error) {
	if envp == nil {
		return nil, fmt.Errorf("envp: %w", ErrNullPointer)
	}

	ptrs := unsafe.Slice(envp, vectorLen(envp))
	env := make(Env, len(ptrs))

	for i, s := range ptrs {
		entry := c.GoString(s)
		if !utf8.ValidString(entry) {
			return nil, fmt.Errorf("envp[%d]: %w", i, ErrInvalidUTF8)
		}

		key, value, err := splitEnvEntry(entry)
		if err != nil {
			return nil, err
		}

		if key != "" {
			env[key] = value
		}
	}

	return env, nil
}

// Strings re-encodes the environment as "KEY=value" entries in
// unspecified order.
func (e Env) Strings() []string {
	entries := make([]string, 0, len(e))
	for key, value := range e {
		entries = append(entries, key+"="+value)
	}

	return entries
}

func splitEnvEntry(entry string) (string, string, error) {
	if entry == "" {
		return "", "", nil
	}

	key, value, found := strings.Cut(entry, "=")
	if !found {
		return "", "", fmt.Errorf("%w: %q (missing '=')", ErrMalformedEnv, entry)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("%w: %q (empty key)", ErrMalformedEnv, entry)
	}

	return key, value, nil
}
