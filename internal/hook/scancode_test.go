package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winswitch/internal/hotkey"
)

func TestEventFromLL(t *testing.T) {
	tests := []struct {
		name     string
		scanCode uint32
		flags    uint32
		want     hotkey.Event
	}{
		{"left alt press", 0x38, 0, hotkey.Event{Code: 0x38, Pressed: true}},
		{"right alt release", 0x38, llkhfExtended | llkhfUp, hotkey.Event{Code: hotkey.CodeRightAlt}},
		{"right shift plain", 0x36, 0, hotkey.Event{Code: hotkey.CodeRightShift, Pressed: true}},
		{"right shift extended", 0x36, llkhfExtended, hotkey.Event{Code: hotkey.CodeRightShift, Pressed: true}},
		{"left shift extended release", 0x2A, llkhfExtended | llkhfUp, hotkey.Event{Code: hotkey.CodeLeftShift}},
		{"high bits dropped", 0x1_0F, 0, hotkey.Event{Code: 0x0F, Pressed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventFromLL(tt.scanCode, tt.flags))
		})
	}
}

func TestExtendedRightShiftReversesCycle(t *testing.T) {
	b, err := hotkey.ParseBinding(hotkey.SwitchApps, "alt+tab")
	require.NoError(t, err)
	m := hotkey.NewMatcher([]hotkey.Binding{b})

	m.Handle(eventFromLL(0x38, 0))
	m.Handle(eventFromLL(0x36, llkhfExtended))
	res := m.Handle(eventFromLL(0x0F, 0))

	require.Len(t, res.Signals, 1)
	assert.Equal(t, hotkey.SignalAdvance, res.Signals[0].Kind)
	assert.True(t, res.Signals[0].Reverse)
}
