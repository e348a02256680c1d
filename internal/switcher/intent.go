package switcher

import "fmt"

// IntentKind - тип намерения пользователя.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentAdvanceApps
	IntentCommitApps
	IntentCancelApps
	IntentAdvanceWindows
	IntentCommitWindows
	// IntentClick - щелчок по оверлею, координаты в X, Y.
	IntentClick
	// IntentReload - перечитать конфигурацию.
	IntentReload
	// IntentExit - завершить работу.
	IntentExit
)

var intentNames = map[IntentKind]string{
	IntentNone:           "none",
	IntentAdvanceApps:    "advance_apps",
	IntentCommitApps:     "commit_apps",
	IntentCancelApps:     "cancel_apps",
	IntentAdvanceWindows: "advance_windows",
	IntentCommitWindows:  "commit_windows",
	IntentClick:          "click",
	IntentReload:         "reload",
	IntentExit:           "exit",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", uint8(k))
}

// Intent - сообщение от хука, оверлея или трея к координатору.
type Intent struct {
	Kind    IntentKind
	Reverse bool
	X, Y    int
}

// Advance создаёт намерение шага по приложениям или окнам.
func Advance(kind IntentKind, reverse bool) Intent {
	return Intent{Kind: kind, Reverse: reverse}
}

// Click создаёт намерение щелчка по оверлею.
func Click(x, y int) Intent {
	return Intent{Kind: IntentClick, X: x, Y: y}
}
