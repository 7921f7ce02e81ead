// Package c mirrors the structs and constants of openvpn-plugin.h so
// that the rest of the module can stay free of direct cgo usage.
package c

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <stdlib.h>
#include <openvpn-plugin.h>
*/
import "C"

import (
	"unsafe"
)

type (
	Int  = int
	Char = C.char
)

// OpenVPNPluginFuncStatus is the raw status code space returned to the
// daemon from every entry point.
type OpenVPNPluginFuncStatus = Int

const (
	OpenVPNPluginFuncSuccess  OpenVPNPluginFuncStatus = C.OPENVPN_PLUGIN_FUNC_SUCCESS
	OpenVPNPluginFuncError    OpenVPNPluginFuncStatus = C.OPENVPN_PLUGIN_FUNC_ERROR
	OpenVPNPluginFuncDeferred OpenVPNPluginFuncStatus = C.OPENVPN_PLUGIN_FUNC_DEFERRED
)

const (
	OpenVPNPluginVersion     Int = C.OPENVPN_PLUGIN_VERSION
	OpenVPNPluginV3StructVer Int = C.OPENVPN_PLUGINv3_STRUCTVER
)

type OpenVPNPluginInitPoint = Int

const (
	OpenVPNPluginInitPreConfigParse OpenVPNPluginInitPoint = C.OPENVPN_PLUGIN_INIT_PRE_CONFIG_PARSE
	OpenVPNPluginInitPreDaemon      OpenVPNPluginInitPoint = C.OPENVPN_PLUGIN_INIT_PRE_DAEMON
	OpenVPNPluginInitPostDaemon     OpenVPNPluginInitPoint = C.OPENVPN_PLUGIN_INIT_POST_DAEMON
	OpenVPNPluginInitPostUIDChange  OpenVPNPluginInitPoint = C.OPENVPN_PLUGIN_INIT_POST_UID_CHANGE
)

// OpenVPNPluginFuncType identifies the event the daemon is dispatching.
type OpenVPNPluginFuncType = C.int

const (
	OpenVPNPluginUp                 OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_UP
	OpenVPNPluginDown               OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_DOWN
	OpenVPNPluginRouteUp            OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_ROUTE_UP
	OpenVPNPluginIPChange           OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_IPCHANGE
	OpenVPNPluginTLSVerify          OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_TLS_VERIFY
	OpenVPNPluginAuthUserPassVerify OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_AUTH_USER_PASS_VERIFY
	OpenVPNPluginClientConnect      OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_CLIENT_CONNECT
	OpenVPNPluginClientDisconnect   OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_CLIENT_DISCONNECT
	OpenVPNPluginLearnAddress       OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_LEARN_ADDRESS
	OpenVPNPluginClientConnectV2    OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_CLIENT_CONNECT_V2
	OpenVPNPluginTLSFinal           OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_TLS_FINAL
	OpenVPNPluginEnablePF           OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_ENABLE_PF
	OpenVPNPluginRoutePredown       OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_ROUTE_PREDOWN
	OpenVPNPluginN                  OpenVPNPluginFuncType = C.OPENVPN_PLUGIN_N

	// OpenVPNPluginAuthFailed is emitted by patched OpenVPN forks only.
	// It is not part of the upstream header and upstream may assign the
	// same value to a different event in the future.
	OpenVPNPluginAuthFailed OpenVPNPluginFuncType = 14
)

type OpenVPNPluginArgsOpenIn struct {
	TypeMask         C.int
	Argv             **C.char
	Envp             **C.char
	Callbacks        *OpenVPNPluginCallbacks
	SSLApi           C.int
	OVPNVersion      *C.char
	OVPNVersionMajor C.uint
	OVPNVersionMinor C.uint
	OVPNVersionPatch *C.char
}

type OpenVPNPluginArgsOpenReturn struct {
	TypeMask   C.int
	Handle     OpenVPNPluginHandle
	ReturnList **OpenVPNPluginStringList
}

type OpenVPNPluginArgsFuncIn struct {
	Type             C.int
	Argv             **C.char
	Envp             **C.char
	Handle           OpenVPNPluginHandle
	PerClientContext unsafe.Pointer
	CurrentCertDepth C.int
	CurrentCert      unsafe.Pointer
}

type OpenVPNPluginArgsFuncReturn struct {
	ReturnList **OpenVPNPluginStringList
}

type OpenVPNPluginCallbacks struct {
	PluginLog           unsafe.Pointer // plugin_log_t
	PluginVLog          unsafe.Pointer // plugin_vlog_t
	PluginSecureMemzero unsafe.Pointer // plugin_secure_memzero_t
	PluginBase64Encode  unsafe.Pointer // plugin_base64_encode_t
	PluginBase64Decode  unsafe.Pointer // plugin_base64_decode_t
}

type OpenVPNPluginStringList struct {
	Next  *OpenVPNPluginStringList
	Name  *C.char
	Value *C.char
}

// OpenVPNPluginHandle carries the opaque per-plugin handle between the
// daemon and the plugin. The bits are never dereferenced on the Go side.
type OpenVPNPluginHandle = unsafe.Pointer

type PLogLevel = Int

const (
	PLogErr   PLogLevel = C.PLOG_ERR
	PLogWarn  PLogLevel = C.PLOG_WARN
	PLogNote  PLogLevel = C.PLOG_NOTE
	PLogDebug PLogLevel = C.PLOG_DEBUG
)

func CString(str string) *Char {
	return C.CString(str)
}

func GoString(cstr *Char) string {
	return C.GoString(cstr)
}

// Free releases a string allocated with CString.
func Free(cstr *Char) {
	C.free(unsafe.Pointer(cstr))
}
