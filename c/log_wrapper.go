package c

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <openvpn-plugin.h>

// Go cannot call C function pointers, so the plugin_log callback has to
// be invoked through this wrapper.
static void call_plugin_log(struct openvpn_plugin_callbacks *cb,
                            int flags, char *name, char *msg) {
	cb->plugin_log(flags, name, "%s", msg);
}
*/
import "C"

import (
	"unsafe"
)

// PluginLog writes msg to the daemon's log through the plugin_log
// callback received at open time. name is the module name the daemon
// prefixes each line with.
func PluginLog(cb *OpenVPNPluginCallbacks, flags PLogLevel, name, msg *Char) {
	C.call_plugin_log((*C.struct_openvpn_plugin_callbacks)(unsafe.Pointer(cb)), C.int(flags), (*C.char)(name), (*C.char)(msg))
}
