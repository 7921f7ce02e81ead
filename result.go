package openvpnplugin

import (
	"github.com/jkroepke/openvpn-plugin-go/c"
)

// EventResult is the plugin's verdict on an event. It is distinct from
// an error returned by a callback: a Failure is a normal business
// outcome (decline the connection, reject the address) and is not
// logged by the adapter, while a returned error is.
type EventResult int

const (
	// Success approves the event. Encoded as OPENVPN_PLUGIN_FUNC_SUCCESS.
	Success EventResult = iota

	// Deferred tells the daemon the verdict will be delivered later
	// through the auth control file. Only valid in response to
	// EventAuthUserPassVerify. Encoded as OPENVPN_PLUGIN_FUNC_DEFERRED.
	Deferred

	// Failure declines the event. Encoded as OPENVPN_PLUGIN_FUNC_ERROR;
	// on the wire the daemon cannot tell a decline from an adapter
	// fault, the distinction only affects logging on this side.
	Failure
)

// Status encodes the result into the daemon's raw status code space.
// Total: any out-of-range value collapses to the conservative error
// code.
func (r EventResult) Status() c.OpenVPNPluginFuncStatus {
	switch r {
	case Success:
		return c.OpenVPNPluginFuncSuccess
	case Deferred:
		return c.OpenVPNPluginFuncDeferred
	default:
		return c.OpenVPNPluginFuncError
	}
}

func (r EventResult) String() string {
	switch r {
	case Success:
		return "success"
	case Deferred:
		return "deferred"
	case Failure:
		return "failure"
	default:
		return "invalid"
	}
}
