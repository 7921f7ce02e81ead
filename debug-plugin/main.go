// The debug plugin registers for almost every stable daemon event,
// logs each callback invocation with its arguments and environment, and
// approves everything. Build it with:
//
//	go build -buildmode=c-shared -o openvpn-debug-plugin.so ./debug-plugin
//
// and load it with `plugin /path/to/openvpn-debug-plugin.so [config.yaml]`.
package main

import (
	"log/slog"

	openvpnplugin "github.com/jkroepke/openvpn-plugin-go"
	"github.com/jkroepke/openvpn-plugin-go/ffi"
	"github.com/jkroepke/openvpn-plugin-go/log"
)

// debugState is the handle carried between callbacks.
type debugState struct {
	logger     *slog.Logger
	eventCount uint64
}

//nolint:gochecknoglobals
var plugin = openvpnplugin.New(openDebug, eventDebug, closeDebug,
	openvpnplugin.WithCapabilities(capabilities),
)

// registeredEvents lists the events the debug plugin subscribes to.
// TLS verify and auth-user-pass-verify are left out: declining them
// would interfere with connections, and a log-and-approve plugin has no
// business approving authentication.
func registeredEvents() []openvpnplugin.Event {
	events := []openvpnplugin.Event{
		openvpnplugin.EventUp,
		openvpnplugin.EventDown,
		openvpnplugin.EventRouteUp,
		openvpnplugin.EventIPChange,
		openvpnplugin.EventClientConnect,
		openvpnplugin.EventClientDisconnect,
		openvpnplugin.EventLearnAddress,
		openvpnplugin.EventClientConnectV2,
		openvpnplugin.EventTLSFinal,
		openvpnplugin.EventEnablePF,
		openvpnplugin.EventRoutePredown,
	}

	if capabilities.AuthFailedEvent {
		events = append(events, openvpnplugin.EventAuthFailed)
	}

	return events
}

func openDebug(args []string, env ffi.Env) ([]openvpnplugin.Event, debugState, error) {
	conf := defaultConfig()

	if len(args) > 1 {
		var err error

		conf, err = loadConfig(args[1])
		if err != nil {
			return nil, debugState{}, err
		}
	}

	logger := log.NewFallbackLogger(conf.LogLevel)

	logger.Info("debug plugin loaded",
		slog.Any("args", args),
		slog.Int("env_entries", len(env)),
	)

	return registeredEvents(), debugState{logger: logger}, nil
}

func eventDebug(event openvpnplugin.Event, args []string, env ffi.Env, state *debugState) (openvpnplugin.EventResult, error) {
	state.eventCount++

	state.logger.Info("event received",
		slog.String("event", event.String()),
		slog.Any("args", args),
		slog.Any("env", env),
	)

	return openvpnplugin.Success, nil
}

func closeDebug(state debugState) {
	state.logger.Info("debug plugin closing",
		slog.Uint64("events_seen", state.eventCount),
	)
}

// main satisfies the Go toolchain for a c-shared build; the daemon only
// ever calls the exported plugin symbols.
func main() {}
