package main

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <openvpn-plugin.h>

int openvpn_plugin_open_v3_go(
    int version,
    struct openvpn_plugin_args_open_in *arguments,
    struct openvpn_plugin_args_open_return *retptr
);

int openvpn_plugin_func_v3_go(
    int version,
    struct openvpn_plugin_args_func_in *arguments,
    struct openvpn_plugin_args_func_return *retptr
);

// The daemon resolves these exact symbol names from the shared object.
// The header const-qualifies the argument structs, which clashes with
// the prototypes cgo generates for exported Go functions, so thin C
// shims forward to the Go exports instead.
int openvpn_plugin_open_v3(
    const int version,
    struct openvpn_plugin_args_open_in *arguments,
    struct openvpn_plugin_args_open_return *retptr
) {
    return openvpn_plugin_open_v3_go(version, arguments, retptr);
}

int openvpn_plugin_func_v3(
    const int version,
    struct openvpn_plugin_args_func_in *arguments,
    struct openvpn_plugin_args_func_return *retptr
) {
    return openvpn_plugin_func_v3_go(version, arguments, retptr);
}
*/
import "C"
