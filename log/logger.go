// Package log bridges Go structured logging to the OpenVPN daemon.
// Records are rendered to a single line and handed to the daemon's
// plugin_log callback, which routes them into the regular OpenVPN log
// with the plugin's module name as prefix.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jkroepke/openvpn-plugin-go/c"
)

// DefaultModule is the name the daemon prefixes log lines with unless
// overridden via Options.
const DefaultModule = "openvpn-plugin-go"

// Options configures a PluginHandler.
type Options struct {
	// Level is the minimum record level forwarded to the daemon.
	// Defaults to slog.LevelInfo.
	Level slog.Leveler

	// Module is the plugin name shown in the daemon log.
	// Defaults to DefaultModule.
	Module string
}

// PluginHandler is a slog.Handler writing through the daemon's
// plugin_log callback. It is safe for use from any entry point; the
// daemon serializes per-instance callbacks and the handler additionally
// guards the C call with its own mutex.
type PluginHandler struct {
	cb           *c.OpenVPNPluginCallbacks
	module       *c.Char
	level        slog.Leveler
	mu           *sync.Mutex
	groupPrefix  string
	preformatted []byte
}

// NewPluginHandler wraps the callbacks struct received in the open
// entry point. opts may be nil.
func NewPluginHandler(cb *c.OpenVPNPluginCallbacks, opts *Options) *PluginHandler {
	handler := &PluginHandler{
		cb:     cb,
		level:  slog.LevelInfo,
		module: c.CString(DefaultModule),
		mu:     &sync.Mutex{},
	}

	if opts != nil {
		if opts.Level != nil {
			handler.level = opts.Level
		}

		if opts.Module != "" {
			handler.module = c.CString(opts.Module)
		}
	}

	return handler
}

func (h *PluginHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PluginHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	handler := *h
	handler.preformatted = append([]byte(nil), h.preformatted...)

	for _, attr := range attrs {
		handler.preformatted = handler.appendAttr(handler.preformatted, attr)
	}

	return &handler
}

func (h *PluginHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	handler := *h
	handler.groupPrefix = h.groupPrefix + name + "."

	return &handler
}

func (h *PluginHandler) Handle(_ context.Context, record slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, record.Message...)
	buf = append(buf, h.preformatted...)

	record.Attrs(func(attr slog.Attr) bool {
		buf = h.appendAttr(buf, attr)

		return true
	})

	msg := c.CString(string(buf))

	h.mu.Lock()
	c.PluginLog(h.cb, pluginLogLevel(record.Level), h.module, msg)
	h.mu.Unlock()

	c.Free(msg)

	return nil
}

func (h *PluginHandler) appendAttr(buf []byte, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return buf
	}

	key := h.groupPrefix + attr.Key

	switch attr.Value.Kind() {
	case slog.KindGroup:
		attrs := attr.Value.Group()
		if len(attrs) == 0 {
			return buf
		}

		group := *h
		if attr.Key != "" {
			group.groupPrefix = key + "."
		}

		for _, ga := range attrs {
			buf = group.appendAttr(buf, ga)
		}
	case slog.KindString:
		buf = fmt.Appendf(buf, " %s=%q", key, attr.Value.String())
	case slog.KindTime:
		buf = fmt.Appendf(buf, " %s=%s", key, attr.Value.Time().Format(time.RFC3339Nano))
	default:
		buf = fmt.Appendf(buf, " %s=%v", key, attr.Value)
	}

	return buf
}

func pluginLogLevel(level slog.Level) c.PLogLevel {
	switch {
	case level >= slog.LevelError:
		return c.PLogErr
	case level >= slog.LevelWarn:
		return c.PLogWarn
	case level >= slog.LevelInfo:
		return c.PLogNote
	default:
		return c.PLogDebug
	}
}
