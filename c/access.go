package c

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <openvpn-plugin.h>
*/
import "C"

// Accessors for the argument structs, so packages above this one never
// have to name cgo types.

func GetArgv(in *OpenVPNPluginArgsOpenIn) **Char {
	return in.Argv
}

func GetEnvp(in *OpenVPNPluginArgsOpenIn) **Char {
	return in.Envp
}

func GetCallbacks(in *OpenVPNPluginArgsOpenIn) *OpenVPNPluginCallbacks {
	return in.Callbacks
}

func SetTypeMask(out *OpenVPNPluginArgsOpenReturn, mask Int) {
	out.TypeMask = C.int(mask)
}

func SetHandle(out *OpenVPNPluginArgsOpenReturn, handle OpenVPNPluginHandle) {
	out.Handle = handle
}

func GetFuncType(in *OpenVPNPluginArgsFuncIn) Int {
	return Int(in.Type)
}

func GetFuncArgv(in *OpenVPNPluginArgsFuncIn) **Char {
	return in.Argv
}

func GetFuncEnvp(in *OpenVPNPluginArgsFuncIn) **Char {
	return in.Envp
}

func GetFuncHandle(in *OpenVPNPluginArgsFuncIn) OpenVPNPluginHandle {
	return in.Handle
}
