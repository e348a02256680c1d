package hook

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winswitch/internal/hotkey"
	"winswitch/internal/switcher"
)

type recordingSink struct {
	mu      sync.Mutex
	intents []switcher.Intent
}

func (s *recordingSink) Post(in switcher.Intent) {
	s.mu.Lock()
	s.intents = append(s.intents, in)
	s.mu.Unlock()
}

type panicSink struct{}

func (panicSink) Post(switcher.Intent) { panic("boom") }

func installState(t *testing.T, sink Sink) *Listener {
	t.Helper()
	apps, err := hotkey.ParseBinding(hotkey.SwitchApps, "alt+tab")
	require.NoError(t, err)
	windows, err := hotkey.ParseBinding(hotkey.SwitchWindows, "alt+`")
	require.NoError(t, err)

	st := &state{matcher: hotkey.NewMatcher([]hotkey.Binding{windows, apps}), sink: sink}
	st.matcher.SetGate(st.allowed)
	require.True(t, current.CompareAndSwap(nil, st))
	t.Cleanup(func() { current.Store(nil) })
	return &Listener{st: st}
}

func key(code hotkey.ScanCode, pressed bool) hotkey.Event {
	return hotkey.Event{Code: code, Pressed: pressed}
}

func TestDispatchWithoutListener(t *testing.T) {
	assert.False(t, dispatch(key(hotkey.CodeTab, true)))
}

func TestDispatchPostsIntentsInOrder(t *testing.T) {
	sink := &recordingSink{}
	installState(t, sink)

	assert.False(t, dispatch(key(hotkey.CodeLeftAlt, true)))
	assert.True(t, dispatch(key(hotkey.CodeTab, true)))
	assert.False(t, dispatch(key(hotkey.CodeTab, false)))
	assert.False(t, dispatch(key(hotkey.CodeLeftShift, true)))
	assert.True(t, dispatch(key(hotkey.CodeTab, true)))
	assert.False(t, dispatch(key(hotkey.CodeLeftShift, false)))
	assert.False(t, dispatch(key(hotkey.CodeLeftAlt, false)))

	assert.Equal(t, []switcher.Intent{
		{Kind: switcher.IntentAdvanceApps},
		{Kind: switcher.IntentAdvanceApps, Reverse: true},
		{Kind: switcher.IntentCommitApps},
	}, sink.intents)
}

func TestDispatchForwardsUnmatchedKeys(t *testing.T) {
	sink := &recordingSink{}
	installState(t, sink)

	for code := hotkey.ScanCode(0x02); code < 0x60; code++ {
		if code == hotkey.CodeTab || code == hotkey.CodeBackquote || code == hotkey.CodeEscape {
			continue
		}
		assert.False(t, dispatch(key(code, true)), "code %#x", code)
		assert.False(t, dispatch(key(code, false)), "code %#x", code)
	}
	assert.Empty(t, sink.intents)
}

func TestDispatchPanicForwardsEvent(t *testing.T) {
	installState(t, panicSink{})

	assert.False(t, dispatch(key(hotkey.CodeLeftAlt, true)))
	assert.NotPanics(t, func() {
		assert.False(t, dispatch(key(hotkey.CodeTab, true)))
	})
}

func TestSetBlocked(t *testing.T) {
	sink := &recordingSink{}
	l := installState(t, sink)

	l.SetBlocked(hotkey.SwitchWindows, true)
	dispatch(key(hotkey.CodeLeftAlt, true))
	assert.False(t, dispatch(key(hotkey.CodeBackquote, true)))
	assert.True(t, dispatch(key(hotkey.CodeTab, true)), "apps hotkey is not affected")

	l.SetBlocked(hotkey.SwitchWindows, false)
	assert.True(t, dispatch(key(hotkey.CodeBackquote, true)))

	assert.Equal(t, []switcher.Intent{
		{Kind: switcher.IntentAdvanceApps},
		{Kind: switcher.IntentAdvanceWindows},
	}, sink.intents)
}

func TestSetBindingsKeepsHook(t *testing.T) {
	sink := &recordingSink{}
	l := installState(t, sink)

	ctrlTab, err := hotkey.ParseBinding(hotkey.SwitchApps, "ctrl+tab")
	require.NoError(t, err)
	l.SetBindings([]hotkey.Binding{ctrlTab})

	dispatch(key(hotkey.CodeLeftAlt, true))
	assert.False(t, dispatch(key(hotkey.CodeTab, true)))
	dispatch(key(hotkey.CodeLeftAlt, false))

	dispatch(key(hotkey.CodeRightCtrl, true))
	assert.True(t, dispatch(key(hotkey.CodeTab, true)))
	dispatch(key(hotkey.CodeEscape, true))
	dispatch(key(hotkey.CodeRightCtrl, false))

	assert.Equal(t, []switcher.Intent{
		{Kind: switcher.IntentAdvanceApps},
		{Kind: switcher.IntentCancelApps},
	}, sink.intents)
}

func TestIntentFor(t *testing.T) {
	tests := []struct {
		sig  hotkey.Signal
		want switcher.Intent
		ok   bool
	}{
		{hotkey.Signal{ID: hotkey.SwitchApps, Kind: hotkey.SignalAdvance, Reverse: true}, switcher.Intent{Kind: switcher.IntentAdvanceApps, Reverse: true}, true},
		{hotkey.Signal{ID: hotkey.SwitchApps, Kind: hotkey.SignalCommit}, switcher.Intent{Kind: switcher.IntentCommitApps}, true},
		{hotkey.Signal{ID: hotkey.SwitchApps, Kind: hotkey.SignalCancel}, switcher.Intent{Kind: switcher.IntentCancelApps}, true},
		{hotkey.Signal{ID: hotkey.SwitchWindows, Kind: hotkey.SignalAdvance}, switcher.Intent{Kind: switcher.IntentAdvanceWindows}, true},
		{hotkey.Signal{ID: hotkey.SwitchWindows, Kind: hotkey.SignalCommit}, switcher.Intent{Kind: switcher.IntentCommitWindows}, true},
		{hotkey.Signal{ID: hotkey.SwitchWindows, Kind: hotkey.SignalCancel}, switcher.Intent{}, false},
		{hotkey.Signal{ID: 7, Kind: hotkey.SignalAdvance}, switcher.Intent{}, false},
	}

	for _, tt := range tests {
		got, ok := intentFor(tt.sig)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestStartRequiresSink(t *testing.T) {
	_, err := Start(nil, nil)
	assert.Error(t, err)
}
