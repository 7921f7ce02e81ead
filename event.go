package openvpnplugin

import (
	"fmt"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// Event identifies a daemon lifecycle notification dispatched to the
// plugin. The numeric values are the OPENVPN_PLUGIN_* constants from
// openvpn-plugin.h and double as bit numbers in the type mask returned
// at open time.
type Event int

const (
	EventUp                 = Event(c.OpenVPNPluginUp)
	EventDown               = Event(c.OpenVPNPluginDown)
	EventRouteUp            = Event(c.OpenVPNPluginRouteUp)
	EventIPChange           = Event(c.OpenVPNPluginIPChange)
	EventTLSVerify          = Event(c.OpenVPNPluginTLSVerify)
	EventAuthUserPassVerify = Event(c.OpenVPNPluginAuthUserPassVerify)
	EventClientConnect      = Event(c.OpenVPNPluginClientConnect)
	EventClientDisconnect   = Event(c.OpenVPNPluginClientDisconnect)
	EventLearnAddress       = Event(c.OpenVPNPluginLearnAddress)
	EventClientConnectV2    = Event(c.OpenVPNPluginClientConnectV2)
	EventTLSFinal           = Event(c.OpenVPNPluginTLSFinal)
	EventEnablePF           = Event(c.OpenVPNPluginEnablePF)
	EventRoutePredown       = Event(c.OpenVPNPluginRoutePredown)

	// EventAuthFailed exists only in patched OpenVPN forks and decodes
	// only when Capabilities.AuthFailedEvent is set. Upstream may reuse
	// its code for something else.
	EventAuthFailed = Event(c.OpenVPNPluginAuthFailed)
)

// Capabilities selects non-standard daemon events the plugin is built
// against. The zero value matches an unpatched upstream daemon.
type Capabilities struct {
	// AuthFailedEvent enables decoding of EventAuthFailed.
	AuthFailedEvent bool
}

// EventFromCode maps a raw event discriminant to its Event. The second
// return is false for codes this build does not recognize; callers must
// reject such events rather than guess. OPENVPN_PLUGIN_N is a count
// sentinel, not an event, and is rejected too.
func EventFromCode(code c.Int, caps Capabilities) (Event, bool) {
	event := Event(code)

	switch event {
	case EventUp, EventDown, EventRouteUp, EventIPChange, EventTLSVerify,
		EventAuthUserPassVerify, EventClientConnect, EventClientDisconnect,
		EventLearnAddress, EventClientConnectV2, EventTLSFinal,
		EventEnablePF, EventRoutePredown:
		return event, true
	case EventAuthFailed:
		if caps.AuthFailedEvent {
			return event, true
		}
	}

	return 0, false
}

// EventMask folds the registered events into the type_mask bitmask the
// daemon expects back from open.
func EventMask(events []Event) c.Int {
	mask := 0
	for _, event := range events {
		mask |= 1 << int(event)
	}

	return mask
}

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventRouteUp:
		return "route-up"
	case EventIPChange:
		return "ipchange"
	case EventTLSVerify:
		return "tls-verify"
	case EventAuthUserPassVerify:
		return "auth-user-pass-verify"
	case EventClientConnect:
		return "client-connect"
	case EventClientDisconnect:
		return "client-disconnect"
	case EventLearnAddress:
		return "learn-address"
	case EventClientConnectV2:
		return "client-connect-v2"
	case EventTLSFinal:
		return "tls-final"
	case EventEnablePF:
		return "enable-pf"
	case EventRoutePredown:
		return "route-predown"
	case EventAuthFailed:
		return "auth-failed"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}
