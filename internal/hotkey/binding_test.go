package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		name       string
		id         ID
		text       string
		modifiers  []ScanCode
		trigger    ScanCode
		cancelable bool
		normalized string
	}{
		{"alt tab", SwitchApps, "alt+tab", []ScanCode{CodeLeftAlt, CodeRightAlt}, CodeTab, true, "alt+tab"},
		{"alt backquote", SwitchWindows, "alt+`", []ScanCode{CodeLeftAlt, CodeRightAlt}, CodeBackquote, false, "alt+`"},
		{"spaces and case", SwitchWindows, "  Alt + Backtick ", []ScanCode{CodeLeftAlt, CodeRightAlt}, CodeBackquote, false, "alt+`"},
		{"win key", SwitchApps, "win+space", []ScanCode{CodeLeftWin, CodeRightWin}, CodeSpace, true, "win+space"},
		{"left ctrl", SwitchWindows, "lctrl+q", []ScanCode{CodeLeftCtrl}, 0x10, false, "lctrl+q"},
		{"alias", SwitchWindows, "control+f4", []ScanCode{CodeLeftCtrl, CodeRightCtrl}, 0x3E, false, "ctrl+f4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBinding(tt.id, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.id, b.ID)
			assert.Equal(t, tt.modifiers, b.Modifiers)
			assert.Equal(t, tt.trigger, b.Trigger)
			assert.Equal(t, tt.cancelable, b.Cancelable)
			assert.Equal(t, tt.normalized, b.String())
		})
	}
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no modifier", "tab"},
		{"two modifiers", "ctrl+alt+tab"},
		{"unknown modifier", "hyper+tab"},
		{"unknown key", "alt+pause"},
		{"trigger is modifier", "alt+shift"},
		{"escape reserved", "alt+esc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBinding(SwitchApps, tt.text)
			assert.Error(t, err)
		})
	}

	_, err := ParseBinding(SwitchApps, "")
	assert.ErrorIs(t, err, ErrEmptyBinding)
}

func TestValidateBindings(t *testing.T) {
	apps, err := ParseBinding(SwitchApps, "alt+tab")
	require.NoError(t, err)
	windows, err := ParseBinding(SwitchWindows, "alt+`")
	require.NoError(t, err)
	assert.NoError(t, ValidateBindings([]Binding{apps, windows}))

	clash, err := ParseBinding(SwitchWindows, "lalt+tab")
	require.NoError(t, err)
	assert.Error(t, ValidateBindings([]Binding{apps, clash}))

	other, err := ParseBinding(SwitchWindows, "ctrl+tab")
	require.NoError(t, err)
	assert.NoError(t, ValidateBindings([]Binding{apps, other}))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "switch_apps", SwitchApps.String())
	assert.Equal(t, "switch_windows", SwitchWindows.String())
	assert.Equal(t, "hotkey(9)", ID(9).String())
}
