package hook

import "winswitch/internal/hotkey"

// Флаги KBDLLHOOKSTRUCT.
const (
	llkhfExtended = 0x01
	llkhfUp       = 0x80
)

// eventFromLL переводит скан-код и флаги низкоуровневого хука в событие.
// Флаг extended добавляет префикс 0x0E00, кроме shift: правый shift
// бывает помечен расширенным, но в таблице он без префикса.
func eventFromLL(scanCode, flags uint32) hotkey.Event {
	code := hotkey.ScanCode(scanCode & 0xFF)
	if flags&llkhfExtended != 0 && !hotkey.IsShift(code) {
		code |= hotkey.ExtendedPrefix
	}
	return hotkey.Event{Code: code, Pressed: flags&llkhfUp == 0}
}
