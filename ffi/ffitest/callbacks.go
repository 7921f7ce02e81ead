//go:build linux && cgo

package ffitest

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#include <openvpn-plugin.h>

static void noop_plugin_log(openvpn_plugin_log_flags_t flags,
                            const char *module,
                            const char *fmt, ...)
{
    (void)flags; (void)module; (void)fmt;
}

struct openvpn_plugin_callbacks noop_callbacks = {
    .plugin_log = noop_plugin_log,
};
*/
import "C"

import (
	"unsafe"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// Callbacks returns a daemon callbacks struct whose plugin_log discards
// everything.
func Callbacks() *c.OpenVPNPluginCallbacks {
	return (*c.OpenVPNPluginCallbacks)(unsafe.Pointer(&C.noop_callbacks))
}
