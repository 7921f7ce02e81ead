//go:build !authfailed

package main

import (
	openvpnplugin "github.com/jkroepke/openvpn-plugin-go"
)

// Default build: upstream daemon, no fork-only events.
//
//nolint:gochecknoglobals
var capabilities = openvpnplugin.Capabilities{}
