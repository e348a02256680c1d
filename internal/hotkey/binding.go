package hotkey

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ID идентифицирует горячую клавишу.
type ID uint8

const (
	// SwitchWindows переключает окна текущего приложения.
	SwitchWindows ID = 1
	// SwitchApps переключает приложения и показывает оверлей.
	SwitchApps ID = 2
)

// String возвращает имя секции конфига.
func (id ID) String() string {
	switch id {
	case SwitchWindows:
		return "switch_windows"
	case SwitchApps:
		return "switch_apps"
	default:
		return fmt.Sprintf("hotkey(%d)", uint8(id))
	}
}

// ErrEmptyBinding возвращается ParseBinding для пустой строки.
var ErrEmptyBinding = errors.New("empty hotkey")

// Binding описывает глобальную горячую клавишу: любой из Modifiers + Trigger.
// Создаётся через ParseBinding.
type Binding struct {
	ID        ID
	Modifiers []ScanCode
	Trigger   ScanCode
	// Cancelable: Esc при зажатом модификаторе отменяет переключение.
	Cancelable bool

	normalized string
}

// String возвращает каноническую форму "модификатор+клавиша".
func (b Binding) String() string { return b.normalized }

// HasModifier сообщает, является ли code модификатором этой клавиши.
func (b Binding) HasModifier(code ScanCode) bool {
	return slices.Contains(b.Modifiers, code)
}

// ParseBinding разбирает строку вида "alt+tab" или "Alt + `".
// Допускается ровно один модификатор и одна клавиша.
func ParseBinding(id ID, text string) (Binding, error) {
	raw := strings.Split(strings.ToLower(strings.TrimSpace(text)), "+")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		parts = append(parts, p)
	}

	switch len(parts) {
	case 0:
		return Binding{}, ErrEmptyBinding
	case 1:
		return Binding{}, fmt.Errorf("hotkey %q: missing modifier", text)
	case 2:
	default:
		return Binding{}, fmt.Errorf("hotkey %q: only one modifier is supported", text)
	}

	mods, ok := modifierCodes[parts[0]]
	if !ok {
		return Binding{}, fmt.Errorf("hotkey %q: unknown modifier %q", text, parts[0])
	}
	if _, isMod := modifierCodes[parts[1]]; isMod {
		return Binding{}, fmt.Errorf("hotkey %q: trigger %q is a modifier", text, parts[1])
	}
	trigger, ok := keyCodes[parts[1]]
	if !ok {
		return Binding{}, fmt.Errorf("hotkey %q: unknown key %q", text, parts[1])
	}
	if trigger == CodeEscape {
		return Binding{}, fmt.Errorf("hotkey %q: esc is reserved for cancel", text)
	}

	return Binding{
		ID:         id,
		Modifiers:  slices.Clone(mods),
		Trigger:    trigger,
		Cancelable: id == SwitchApps,
		normalized: parts[0] + "+" + parts[1],
	}, nil
}

// ValidateBindings проверяет, что две клавиши не совпадают
// одновременно по триггеру и модификатору.
func ValidateBindings(bindings []Binding) error {
	for i := range bindings {
		for j := i + 1; j < len(bindings); j++ {
			a, b := bindings[i], bindings[j]
			if a.Trigger != b.Trigger {
				continue
			}
			for _, m := range a.Modifiers {
				if b.HasModifier(m) {
					return fmt.Errorf("hotkeys %s (%s) and %s (%s) conflict", a.ID, a, b.ID, b)
				}
			}
		}
	}
	return nil
}
