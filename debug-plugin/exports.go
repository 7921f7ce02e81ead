package main

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <openvpn-plugin.h>
*/
import "C"

import (
	"unsafe"

	openvpnplugin "github.com/jkroepke/openvpn-plugin-go"
	"github.com/jkroepke/openvpn-plugin-go/c"
)

//export openvpn_plugin_open_v3_go
func openvpn_plugin_open_v3_go(v3structver C.int, args *C.struct_openvpn_plugin_args_open_in, retptr *C.struct_openvpn_plugin_args_open_return) C.int {
	return C.int(plugin.OpenV3(int(v3structver),
		(*c.OpenVPNPluginArgsOpenIn)(unsafe.Pointer(args)),
		(*c.OpenVPNPluginArgsOpenReturn)(unsafe.Pointer(retptr)),
	))
}

//export openvpn_plugin_func_v3_go
func openvpn_plugin_func_v3_go(v3structver C.int, args *C.struct_openvpn_plugin_args_func_in, retptr *C.struct_openvpn_plugin_args_func_return) C.int {
	return C.int(plugin.FuncV3(int(v3structver),
		(*c.OpenVPNPluginArgsFuncIn)(unsafe.Pointer(args)),
		(*c.OpenVPNPluginArgsFuncReturn)(unsafe.Pointer(retptr)),
	))
}

//export openvpn_plugin_close_v1
func openvpn_plugin_close_v1(handle C.openvpn_plugin_handle_t) {
	plugin.CloseV1(c.OpenVPNPluginHandle(handle))
}

//export openvpn_plugin_min_version_required_v1
func openvpn_plugin_min_version_required_v1() C.int {
	return C.int(openvpnplugin.MinVersionRequired)
}

//export openvpn_plugin_select_initialization_point_v1
func openvpn_plugin_select_initialization_point_v1() C.int {
	return C.int(c.OpenVPNPluginInitPreDaemon)
}
