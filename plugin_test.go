//go:build linux && cgo

package openvpnplugin_test

import (
	"errors"
	"log/slog"
	"testing"

	openvpnplugin "github.com/jkroepke/openvpn-plugin-go"
	"github.com/jkroepke/openvpn-plugin-go/c"
	"github.com/jkroepke/openvpn-plugin-go/ffi"
	"github.com/jkroepke/openvpn-plugin-go/ffi/ffitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyState is the handle type carried through the spy callbacks.
type spyState struct {
	id         int
	eventCount int
}

type recordedEvent struct {
	event openvpnplugin.Event
	args  []string
	env   ffi.Env
}

// spy scripts the three callbacks and records every invocation.
type spy struct {
	registered  []openvpnplugin.Event
	openErr     error
	openPanic   bool
	eventResult openvpnplugin.EventResult
	eventErr    error
	eventPanics int
	closePanic  bool

	openCalls  int
	openArgs   []string
	openEnv    ffi.Env
	events     []recordedEvent
	closeCalls int
	closeState spyState
}

func (s *spy) open(args []string, env ffi.Env) ([]openvpnplugin.Event, spyState, error) {
	s.openCalls++
	s.openArgs = args
	s.openEnv = env

	if s.openPanic {
		panic("open callback exploded")
	}

	if s.openErr != nil {
		return nil, spyState{}, s.openErr
	}

	return s.registered, spyState{id: 7}, nil
}

func (s *spy) event(event openvpnplugin.Event, args []string, env ffi.Env, state *spyState) (openvpnplugin.EventResult, error) {
	s.events = append(s.events, recordedEvent{event: event, args: args, env: env})
	state.eventCount++

	if s.eventPanics > 0 {
		s.eventPanics--

		panic("event callback exploded")
	}

	if s.eventErr != nil {
		return openvpnplugin.Failure, s.eventErr
	}

	return s.eventResult, nil
}

func (s *spy) close(state spyState) {
	s.closeCalls++
	s.closeState = state

	if s.closePanic {
		panic("close callback exploded")
	}
}

func newSpyPlugin(t *testing.T, opts ...openvpnplugin.Option) (*openvpnplugin.Plugin[spyState], *spy) {
	t.Helper()

	recorder := &spy{
		registered: []openvpnplugin.Event{
			openvpnplugin.EventClientConnect,
			openvpnplugin.EventClientDisconnect,
		},
	}

	opts = append([]openvpnplugin.Option{
		openvpnplugin.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)

	return openvpnplugin.New(recorder.open, recorder.event, recorder.close, opts...), recorder
}

func newOpenArgs(t *testing.T, args, env []string) (*c.OpenVPNPluginArgsOpenIn, *c.OpenVPNPluginArgsOpenReturn) {
	t.Helper()

	argv, argvStrings := ffitest.CStringArray(args)
	envp, envStrings := ffitest.CStringArray(env)

	t.Cleanup(func() {
		ffitest.FreeCStringArray(argv, argvStrings)
		ffitest.FreeCStringArray(envp, envStrings)
	})

	in := &c.OpenVPNPluginArgsOpenIn{
		Argv:      argv,
		Envp:      envp,
		Callbacks: ffitest.Callbacks(),
	}

	return in, &c.OpenVPNPluginArgsOpenReturn{}
}

func newFuncArgs(t *testing.T, code int, args, env []string, handle c.OpenVPNPluginHandle) *c.OpenVPNPluginArgsFuncIn {
	t.Helper()

	argv, argvStrings := ffitest.CStringArray(args)
	envp, envStrings := ffitest.CStringArray(env)

	t.Cleanup(func() {
		ffitest.FreeCStringArray(argv, argvStrings)
		ffitest.FreeCStringArray(envp, envStrings)
	})

	return &c.OpenVPNPluginArgsFuncIn{
		Type:   c.OpenVPNPluginFuncType(code),
		Argv:   argv,
		Envp:   envp,
		Handle: handle,
	}
}

// mustOpen runs a successful open and hands back the opaque handle.
func mustOpen(t *testing.T, plugin *openvpnplugin.Plugin[spyState]) c.OpenVPNPluginHandle {
	t.Helper()

	in, out := newOpenArgs(t, []string{"plugin", "--mode=x"}, []string{"FOO=bar"})
	status := plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, status)
	require.NotNil(t, out.Handle)

	return out.Handle
}

func TestPlugin_OpenEventCloseSequence(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)

	in, out := newOpenArgs(t, []string{"plugin", "--mode=x"}, []string{"FOO=bar"})
	status := plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, status)

	require.Equal(t, 1, recorder.openCalls)
	assert.Equal(t, []string{"plugin", "--mode=x"}, recorder.openArgs)
	assert.Equal(t, ffi.Env{"FOO": "bar"}, recorder.openEnv)
	assert.Equal(t, openvpnplugin.EventMask(recorder.registered), int(out.TypeMask))
	require.NotNil(t, out.Handle)

	funcIn := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, []string{"FOO=bar"}, out.Handle)
	status = plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, status)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, openvpnplugin.EventClientConnect, recorder.events[0].event)
	assert.Equal(t, "bar", recorder.events[0].env["FOO"])

	// Each call dispatches exactly once, and handle state persists.
	status = plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, status)
	require.Len(t, recorder.events, 2)

	plugin.CloseV1(out.Handle)
	require.Equal(t, 1, recorder.closeCalls)
	assert.Equal(t, 7, recorder.closeState.id)
	assert.Equal(t, 2, recorder.closeState.eventCount)
}

func TestPlugin_OpenStructVersionTooOld(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	in, out := newOpenArgs(t, []string{"plugin"}, nil)

	status := plugin.OpenV3(openvpnplugin.StructVersionMin-1, in, out)
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Zero(t, recorder.openCalls)
	assert.Nil(t, out.Handle)
}

func TestPlugin_OpenMarshalFailure(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	in, out := newOpenArgs(t, []string{"plugin", "\xc0bad"}, nil)

	status := plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Zero(t, recorder.openCalls, "open callback must not see undecodable input")
	assert.Nil(t, out.Handle, "no handle may be created on a failed open")
}

func TestPlugin_OpenMalformedEnvironment(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	in, out := newOpenArgs(t, []string{"plugin"}, []string{"NO_EQUALS_HERE"})

	status := plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Zero(t, recorder.openCalls)
	assert.Nil(t, out.Handle)
}

func TestPlugin_OpenCallbackError(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	recorder.openErr = errors.New("no socket")

	in, out := newOpenArgs(t, []string{"plugin"}, nil)
	status := plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Nil(t, out.Handle)
}

func TestPlugin_OpenCallbackPanicContained(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	recorder.openPanic = true

	in, out := newOpenArgs(t, []string{"plugin"}, nil)

	var status c.OpenVPNPluginFuncStatus

	require.NotPanics(t, func() {
		status = plugin.OpenV3(openvpnplugin.StructVersionMin, in, out)
	})
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Nil(t, out.Handle)
}

func TestPlugin_EventUnrecognizedRejected(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	handle := mustOpen(t, plugin)

	// 13 is the count sentinel, 99 is out of range entirely.
	for _, code := range []int{13, 99} {
		funcIn := newFuncArgs(t, code, []string{"plugin"}, nil, handle)
		status := plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
		require.Equal(t, c.OpenVPNPluginFuncError, status)
	}

	assert.Empty(t, recorder.events, "unrecognized events must not reach the callback")
}

func TestPlugin_EventAuthFailedGated(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		plugin, recorder := newSpyPlugin(t)
		handle := mustOpen(t, plugin)

		funcIn := newFuncArgs(t, 14, []string{"plugin"}, nil, handle)
		status := plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
		require.Equal(t, c.OpenVPNPluginFuncError, status)
		assert.Empty(t, recorder.events)
	})

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()

		plugin, recorder := newSpyPlugin(t,
			openvpnplugin.WithCapabilities(openvpnplugin.Capabilities{AuthFailedEvent: true}),
		)
		handle := mustOpen(t, plugin)

		funcIn := newFuncArgs(t, 14, []string{"plugin"}, nil, handle)
		status := plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
		require.Equal(t, c.OpenVPNPluginFuncSuccess, status)
		require.Len(t, recorder.events, 1)
		assert.Equal(t, openvpnplugin.EventAuthFailed, recorder.events[0].event)
	})
}

func TestPlugin_EventMarshalFailureKeepsInstanceUsable(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	handle := mustOpen(t, plugin)

	bad := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, []string{"BROKEN"}, handle)
	status := plugin.FuncV3(openvpnplugin.StructVersionMin, bad, nil)
	require.Equal(t, c.OpenVPNPluginFuncError, status)
	assert.Empty(t, recorder.events)

	good := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, []string{"FOO=bar"}, handle)
	status = plugin.FuncV3(openvpnplugin.StructVersionMin, good, nil)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, status)
	require.Len(t, recorder.events, 1)
}

func TestPlugin_EventResultMapping(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	handle := mustOpen(t, plugin)

	funcIn := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, nil, handle)

	recorder.eventResult = openvpnplugin.Failure
	require.Equal(t, c.OpenVPNPluginFuncError, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))

	recorder.eventResult = openvpnplugin.Deferred
	require.Equal(t, c.OpenVPNPluginFuncDeferred, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))

	recorder.eventResult = openvpnplugin.Success
	require.Equal(t, c.OpenVPNPluginFuncSuccess, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))

	require.Len(t, recorder.events, 3, "every call dispatches exactly once")
}

func TestPlugin_EventCallbackErrorReportedAsFailure(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	recorder.eventErr = errors.New("backend unreachable")
	handle := mustOpen(t, plugin)

	funcIn := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, nil, handle)
	require.Equal(t, c.OpenVPNPluginFuncError, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))
}

func TestPlugin_EventCallbackPanicContained(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	recorder.eventPanics = 1
	handle := mustOpen(t, plugin)

	funcIn := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, nil, handle)

	var status c.OpenVPNPluginFuncStatus

	require.NotPanics(t, func() {
		status = plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil)
	})
	require.Equal(t, c.OpenVPNPluginFuncError, status)

	// The instance survives the contained panic.
	require.Equal(t, c.OpenVPNPluginFuncSuccess, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))
	require.Len(t, recorder.events, 2)
}

func TestPlugin_EventMismatchedHandleType(t *testing.T) {
	t.Parallel()

	intPlugin := openvpnplugin.New(
		func(_ []string, _ ffi.Env) ([]openvpnplugin.Event, int, error) {
			return []openvpnplugin.Event{openvpnplugin.EventUp}, 1, nil
		},
		func(_ openvpnplugin.Event, _ []string, _ ffi.Env, _ *int) (openvpnplugin.EventResult, error) {
			return openvpnplugin.Success, nil
		},
		nil,
		openvpnplugin.WithLogger(slog.New(slog.DiscardHandler)),
	)

	in, out := newOpenArgs(t, []string{"plugin"}, nil)
	require.Equal(t, c.OpenVPNPluginFuncSuccess, intPlugin.OpenV3(openvpnplugin.StructVersionMin, in, out))

	// A handle from a differently-typed plugin must be refused, not
	// dereferenced.
	plugin, recorder := newSpyPlugin(t)
	funcIn := newFuncArgs(t, int(openvpnplugin.EventClientConnect), []string{"plugin"}, nil, out.Handle)
	require.Equal(t, c.OpenVPNPluginFuncError, plugin.FuncV3(openvpnplugin.StructVersionMin, funcIn, nil))
	assert.Empty(t, recorder.events)

	intPlugin.CloseV1(out.Handle)
}

func TestPlugin_CloseNilHandle(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)

	require.NotPanics(t, func() {
		plugin.CloseV1(nil)
	})
	assert.Zero(t, recorder.closeCalls)
}

func TestPlugin_ClosePanicContained(t *testing.T) {
	t.Parallel()

	plugin, recorder := newSpyPlugin(t)
	recorder.closePanic = true
	handle := mustOpen(t, plugin)

	require.NotPanics(t, func() {
		plugin.CloseV1(handle)
	})
	require.Equal(t, 1, recorder.closeCalls)

	// The handle is released even when the callback panics.
	require.NotPanics(t, func() {
		plugin.CloseV1(handle)
	})
	require.Equal(t, 1, recorder.closeCalls)
}
