//go:build authfailed

package main

import (
	openvpnplugin "github.com/jkroepke/openvpn-plugin-go"
)

// Built with -tags authfailed for daemons carrying the auth-failed
// event patch.
//
//nolint:gochecknoglobals
var capabilities = openvpnplugin.Capabilities{
	AuthFailedEvent: true,
}
