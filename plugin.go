package openvpnplugin

import (
	"log/slog"
	"runtime/cgo"
	"unsafe"

	"github.com/jkroepke/openvpn-plugin-go/c"
	"github.com/jkroepke/openvpn-plugin-go/ffi"
	"github.com/jkroepke/openvpn-plugin-go/log"
)

const (
	// MinVersionRequired is what the consumer's
	// openvpn_plugin_min_version_required_v1 export should return.
	MinVersionRequired c.Int = c.OpenVPNPluginVersion

	// StructVersionMin is the default floor for the v3 argument struct
	// version. Older daemons pass smaller structs that lack fields this
	// adapter reads.
	StructVersionMin c.Int = c.OpenVPNPluginV3StructVer
)

// OpenFunc is invoked once when the daemon loads the plugin. It
// receives the decoded plugin arguments and initial daemon environment
// and returns the events to register for together with the handle value
// that carries plugin state between callbacks.
type OpenFunc[H any] func(args []string, env ffi.Env) ([]Event, H, error)

// EventFunc is invoked for each registered event. The returned
// EventResult is the plugin's verdict; returning an error instead logs
// it and reports failure to the daemon.
type EventFunc[H any] func(event Event, args []string, env ffi.Env, handle *H) (EventResult, error)

// CloseFunc is invoked when the daemon unloads the plugin. Best effort:
// its outcome cannot reach the daemon anymore.
type CloseFunc[H any] func(handle H)

// Plugin adapts the three callbacks to the raw v3 plugin ABI. All three
// entry points share the handle type H, so a consumer cannot wire
// mismatched callbacks together.
//
// A Plugin carries no per-instance state itself; everything created at
// open time lives behind the opaque handle returned to the daemon.
type Plugin[H any] struct {
	openFn  OpenFunc[H]
	eventFn EventFunc[H]
	closeFn CloseFunc[H]

	settings settings
}

// instance is the context stored behind the opaque handle for one
// plugin instantiation.
type instance[H any] struct {
	handle H
	logger *slog.Logger
}

// New composes the three callbacks into a Plugin. It performs no I/O;
// the result is ready to be wired to the exported ABI symbols of a
// c-shared build.
func New[H any](openFn OpenFunc[H], eventFn EventFunc[H], closeFn CloseFunc[H], opts ...Option) *Plugin[H] {
	plugin := &Plugin[H]{
		openFn:  openFn,
		eventFn: eventFn,
		closeFn: closeFn,
		settings: settings{
			structVerMin: StructVersionMin,
		},
	}

	for _, opt := range opts {
		opt(&plugin.settings)
	}

	return plugin
}

// OpenV3 implements openvpn_plugin_open_v3. On success it fills in the
// type mask and the opaque handle; on any failure it reports
// OPENVPN_PLUGIN_FUNC_ERROR and leaves no handle behind, so the daemon
// aborts the load without ever calling the event or close entry points
// for this instance.
func (p *Plugin[H]) OpenV3(v3structver c.Int, in *c.OpenVPNPluginArgsOpenIn, out *c.OpenVPNPluginArgsOpenReturn) (status c.OpenVPNPluginFuncStatus) {
	logger := p.openLogger(in)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in open callback", slog.Any("panic", r))

			status = c.OpenVPNPluginFuncError
		}
	}()

	if v3structver < p.settings.structVerMin {
		logger.Error("daemon plugin struct version too old",
			slog.Int("version", v3structver),
			slog.Int("required", p.settings.structVerMin),
		)

		return c.OpenVPNPluginFuncError
	}

	args, err := ffi.DecodeArgv(c.GetArgv(in))
	if err != nil {
		logger.Error("decode plugin arguments", slog.Any("err", err))

		return c.OpenVPNPluginFuncError
	}

	env, err := ffi.DecodeEnv(c.GetEnvp(in))
	if err != nil {
		logger.Error("decode daemon environment", slog.Any("err", err))

		return c.OpenVPNPluginFuncError
	}

	events, handle, err := p.openFn(args, env)
	if err != nil {
		logger.Error("open callback failed", slog.Any("err", err))

		return c.OpenVPNPluginFuncError
	}

	ref := cgo.NewHandle(&instance[H]{
		handle: handle,
		logger: logger,
	})

	c.SetTypeMask(out, EventMask(events))
	// The cgo.Handle is an index into a Go-side table. Its bits ride in
	// the daemon's opaque context pointer and come back unchanged on
	// every later call; the daemon never dereferences them.
	//goland:noinspection GoVetUnsafePointer
	c.SetHandle(out, unsafe.Pointer(ref))

	return c.OpenVPNPluginFuncSuccess
}

// FuncV3 implements openvpn_plugin_func_v3. Unrecognized event codes
// are rejected without invoking the callback. Marshaling failures are
// reported to the daemon but leave the instance usable for later
// events.
func (p *Plugin[H]) FuncV3(v3structver c.Int, in *c.OpenVPNPluginArgsFuncIn, _ *c.OpenVPNPluginArgsFuncReturn) (status c.OpenVPNPluginFuncStatus) {
	logger := p.baseLogger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in event callback", slog.Any("panic", r))

			status = c.OpenVPNPluginFuncError
		}
	}()

	if v3structver < p.settings.structVerMin {
		logger.Error("daemon plugin struct version too old",
			slog.Int("version", v3structver),
			slog.Int("required", p.settings.structVerMin),
		)

		return c.OpenVPNPluginFuncError
	}

	inst, ok := p.instanceFor(c.GetFuncHandle(in))
	if !ok {
		logger.Error("event dispatch with unknown plugin handle")

		return c.OpenVPNPluginFuncError
	}

	logger = inst.logger

	event, ok := EventFromCode(c.GetFuncType(in), p.settings.caps)
	if !ok {
		logger.Error("unrecognized plugin event rejected",
			slog.Int("code", c.GetFuncType(in)),
		)

		return c.OpenVPNPluginFuncError
	}

	args, err := ffi.DecodeArgv(c.GetFuncArgv(in))
	if err != nil {
		logger.Error("decode event arguments",
			slog.String("event", event.String()),
			slog.Any("err", err),
		)

		return c.OpenVPNPluginFuncError
	}

	env, err := ffi.DecodeEnv(c.GetFuncEnvp(in))
	if err != nil {
		logger.Error("decode event environment",
			slog.String("event", event.String()),
			slog.Any("err", err),
		)

		return c.OpenVPNPluginFuncError
	}

	result, err := p.eventFn(event, args, env, &inst.handle)
	if err != nil {
		logger.Error("event callback failed",
			slog.String("event", event.String()),
			slog.Any("err", err),
		)

		return c.OpenVPNPluginFuncError
	}

	return result.Status()
}

// CloseV1 implements openvpn_plugin_close_v1. The context is released
// before the callback runs, so the handle is dead even if the callback
// misbehaves; the daemon expects no status back from close.
func (p *Plugin[H]) CloseV1(handlePtr c.OpenVPNPluginHandle) {
	logger := p.baseLogger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in close callback", slog.Any("panic", r))
		}
	}()

	inst, ok := p.instanceFor(handlePtr)
	if !ok {
		logger.Error("close with unknown plugin handle")

		return
	}

	logger = inst.logger

	cgo.Handle(handlePtr).Delete()

	if p.closeFn != nil {
		p.closeFn(inst.handle)
	}
}

// instanceFor recovers the context stored behind the opaque handle
// bits. A stale or foreign handle resolves to false instead of
// unwinding into the daemon.
func (p *Plugin[H]) instanceFor(handlePtr c.OpenVPNPluginHandle) (inst *instance[H], ok bool) {
	defer func() {
		if recover() != nil {
			inst, ok = nil, false
		}
	}()

	inst, ok = cgo.Handle(handlePtr).Value().(*instance[H])

	return inst, ok
}

// openLogger picks the logger for the open entry point: an explicit
// override, the daemon's plugin_log callback, or stderr when the daemon
// supplied no callbacks struct.
func (p *Plugin[H]) openLogger(in *c.OpenVPNPluginArgsOpenIn) *slog.Logger {
	if p.settings.logger != nil {
		return p.settings.logger
	}

	if cb := c.GetCallbacks(in); cb != nil {
		return slog.New(log.NewPluginHandler(cb, p.settings.logOptions))
	}

	return p.baseLogger()
}

func (p *Plugin[H]) baseLogger() *slog.Logger {
	if p.settings.logger != nil {
		return p.settings.logger
	}

	return log.NewFallbackLogger(slog.LevelInfo)
}
