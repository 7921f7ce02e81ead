package openvpnplugin

import (
	"log/slog"

	"github.com/jkroepke/openvpn-plugin-go/c"
	"github.com/jkroepke/openvpn-plugin-go/log"
)

type settings struct {
	logger       *slog.Logger
	logOptions   *log.Options
	caps         Capabilities
	structVerMin c.Int
}

// Option adjusts the adapter built by New.
type Option func(*settings)

// WithLogger replaces the daemon-backed logger entirely. Mainly useful
// in tests and when the consumer already owns a logger setup.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLogOptions configures the plugin_log-backed logger created at
// open time, e.g. the module name shown in the daemon log.
func WithLogOptions(opts *log.Options) Option {
	return func(s *settings) {
		s.logOptions = opts
	}
}

// WithCapabilities enables decoding of non-standard daemon events.
func WithCapabilities(caps Capabilities) Option {
	return func(s *settings) {
		s.caps = caps
	}
}

// WithStructVersionMin overrides the minimum accepted
// openvpn_plugin_args struct version. The default matches the v3 API
// revision this module is written against.
func WithStructVersionMin(version c.Int) Option {
	return func(s *settings) {
		s.structVerMin = version
	}
}
