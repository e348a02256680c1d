package hotkey

// ScanCode - скан-код клавиши (набор 1 PC/AT), не зависит от раскладки.
// Расширенные клавиши несут префикс 0x0E00, как виртуальные коды libuiohook,
// поэтому оба бэкенда хука выдают одинаковые значения.
type ScanCode uint16

// ExtendedPrefix помечает расширенные скан-коды (правые ctrl/alt, win).
const ExtendedPrefix ScanCode = 0x0E00

const (
	CodeEscape     ScanCode = 0x01
	CodeTab        ScanCode = 0x0F
	CodeBackquote  ScanCode = 0x29
	CodeLeftShift  ScanCode = 0x2A
	CodeRightShift ScanCode = 0x36
	CodeLeftCtrl   ScanCode = 0x1D
	CodeRightCtrl  ScanCode = ExtendedPrefix | 0x1D
	CodeLeftAlt    ScanCode = 0x38
	CodeRightAlt   ScanCode = ExtendedPrefix | 0x38
	CodeLeftWin    ScanCode = ExtendedPrefix | 0x5B
	CodeRightWin   ScanCode = ExtendedPrefix | 0x5C
	CodeSpace      ScanCode = 0x39
)

// IsShift сообщает, является ли code одной из клавиш shift.
func IsShift(code ScanCode) bool {
	return code == CodeLeftShift || code == CodeRightShift
}

// modifierCodes: имя модификатора -> скан-коды, которые им считаются.
// Левый и правый варианты взаимозаменяемы.
var modifierCodes = map[string][]ScanCode{
	"alt":    {CodeLeftAlt, CodeRightAlt},
	"lalt":   {CodeLeftAlt},
	"ralt":   {CodeRightAlt},
	"ctrl":   {CodeLeftCtrl, CodeRightCtrl},
	"lctrl":  {CodeLeftCtrl},
	"rctrl":  {CodeRightCtrl},
	"shift":  {CodeLeftShift, CodeRightShift},
	"lshift": {CodeLeftShift},
	"rshift": {CodeRightShift},
	"win":    {CodeLeftWin, CodeRightWin},
	"super":  {CodeLeftWin, CodeRightWin},
	"lwin":   {CodeLeftWin},
	"rwin":   {CodeRightWin},
}

// keyCodes: имя клавиши -> скан-код
var keyCodes = map[string]ScanCode{
	"esc":       CodeEscape,
	"1":         0x02,
	"2":         0x03,
	"3":         0x04,
	"4":         0x05,
	"5":         0x06,
	"6":         0x07,
	"7":         0x08,
	"8":         0x09,
	"9":         0x0A,
	"0":         0x0B,
	"-":         0x0C,
	"=":         0x0D,
	"backspace": 0x0E,
	"tab":       CodeTab,
	"q":         0x10,
	"w":         0x11,
	"e":         0x12,
	"r":         0x13,
	"t":         0x14,
	"y":         0x15,
	"u":         0x16,
	"i":         0x17,
	"o":         0x18,
	"p":         0x19,
	"[":         0x1A,
	"]":         0x1B,
	"enter":     0x1C,
	"a":         0x1E,
	"s":         0x1F,
	"d":         0x20,
	"f":         0x21,
	"g":         0x22,
	"h":         0x23,
	"j":         0x24,
	"k":         0x25,
	"l":         0x26,
	";":         0x27,
	"'":         0x28,
	"`":         CodeBackquote,
	"\\":        0x2B,
	"z":         0x2C,
	"x":         0x2D,
	"c":         0x2E,
	"v":         0x2F,
	"b":         0x30,
	"n":         0x31,
	"m":         0x32,
	",":         0x33,
	".":         0x34,
	"/":         0x35,
	"space":     CodeSpace,
	"f1":        0x3B,
	"f2":        0x3C,
	"f3":        0x3D,
	"f4":        0x3E,
	"f5":        0x3F,
	"f6":        0x40,
	"f7":        0x41,
	"f8":        0x42,
	"f9":        0x43,
	"f10":       0x44,
	"f11":       0x57,
	"f12":       0x58,
}

// keyAliases - альтернативные написания в конфиге
var keyAliases = map[string]string{
	"escape":    "esc",
	"return":    "enter",
	"backtick":  "`",
	"grave":     "`",
	"tilde":     "`",
	"control":   "ctrl",
	"option":    "alt",
	"meta":      "win",
	"cmd":       "win",
	"semicolon": ";",
	"comma":     ",",
	"period":    ".",
	"slash":     "/",
}
