// Package openvpnplugin adapts Go code to the OpenVPN shared-library
// plugin API (openvpn-plugin.h, v3). A consumer supplies three typed
// callbacks and a handle type; the adapter does the boundary work:
// decoding the daemon's C string vectors into validated Go values,
// mapping event discriminants and verdicts to their fixed codes, and
// containing every callback error or panic so that nothing ever unwinds
// into the daemon.
//
// The consumer side is a package main built with -buildmode=c-shared
// that forwards the exported ABI symbols to a Plugin instance:
//
//	var plugin = openvpnplugin.New(onOpen, onEvent, onClose)
//
//	//export openvpn_plugin_open_v3_go
//	func openvpn_plugin_open_v3_go(v3structver C.int, in *C.struct_openvpn_plugin_args_open_in, out *C.struct_openvpn_plugin_args_open_return) C.int {
//		return C.int(plugin.OpenV3(int(v3structver), (*c.OpenVPNPluginArgsOpenIn)(unsafe.Pointer(in)), (*c.OpenVPNPluginArgsOpenReturn)(unsafe.Pointer(out))))
//	}
//
// together with a small C shim for the un-exportable symbol names; see
// debug-plugin for a complete example.
//
// The daemon invokes at most one entry point at a time per plugin
// instance, and every entry point runs to completion on the calling
// thread. The adapter adds no goroutines and no locking beyond what the
// log sink needs.
package openvpnplugin
