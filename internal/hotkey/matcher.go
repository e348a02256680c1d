package hotkey

import "sync"

// Event - одно нажатие или отпускание клавиши.
type Event struct {
	Code    ScanCode
	Pressed bool
}

// SignalKind - тип сигнала от матчера.
type SignalKind uint8

const (
	// SignalAdvance - триггер нажат при зажатом модификаторе.
	SignalAdvance SignalKind = iota + 1
	// SignalCommit - модификатор отпущен после триггера.
	SignalCommit
	// SignalCancel - Esc при зажатом модификаторе.
	SignalCancel
)

func (k SignalKind) String() string {
	switch k {
	case SignalAdvance:
		return "advance"
	case SignalCommit:
		return "commit"
	case SignalCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Signal - результат распознавания для одной горячей клавиши.
type Signal struct {
	ID      ID
	Kind    SignalKind
	Reverse bool
}

// Result - решение по событию: сигналы и нужно ли поглотить клавишу.
type Result struct {
	Signals []Signal
	Consume bool
}

type bindingState struct {
	binding         Binding
	modifierPressed bool
}

// Matcher превращает поток событий клавиатуры в сигналы Advance/Commit/Cancel.
// Вызывается из потока хука, поэтому работает только с памятью и не блокируется.
type Matcher struct {
	mu          sync.Mutex
	states      []bindingState
	shift       bool
	lastTrigger ScanCode
	gate        func(ID) bool
}

// NewMatcher создаёт матчер для набора клавиш.
func NewMatcher(bindings []Binding) *Matcher {
	m := &Matcher{}
	m.SetBindings(bindings)
	return m
}

// SetBindings заменяет набор клавиш и сбрасывает их состояние.
// Состояние shift и последний триггер сохраняются.
func (m *Matcher) SetBindings(bindings []Binding) {
	states := make([]bindingState, len(bindings))
	for i, b := range bindings {
		states[i] = bindingState{binding: b}
	}

	m.mu.Lock()
	m.states = states
	m.mu.Unlock()
}

// SetGate задаёт фильтр: если fn возвращает false, триггер клавиши id
// не распознаётся и пропускается дальше.
func (m *Matcher) SetGate(fn func(ID) bool) {
	m.mu.Lock()
	m.gate = fn
	m.mu.Unlock()
}

// Handle обрабатывает одно событие клавиатуры.
func (m *Matcher) Handle(ev Event) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res Result

	if IsShift(ev.Code) {
		m.shift = ev.Pressed
	}

	isModifier := false
	for i := range m.states {
		st := &m.states[i]
		if !st.binding.HasModifier(ev.Code) {
			continue
		}
		isModifier = true

		if ev.Pressed {
			st.modifierPressed = true
			continue
		}
		st.modifierPressed = false
		if m.lastTrigger == st.binding.Trigger {
			res.Signals = append(res.Signals, Signal{ID: st.binding.ID, Kind: SignalCommit})
		}
	}

	// Модификаторы и отпускания не поглощаются никогда
	if isModifier || !ev.Pressed {
		return res
	}

	for i := range m.states {
		st := &m.states[i]
		if !st.modifierPressed {
			continue
		}

		switch {
		case ev.Code == st.binding.Trigger:
			if m.gate != nil && !m.gate(st.binding.ID) {
				continue
			}
			res.Signals = append(res.Signals, Signal{
				ID:      st.binding.ID,
				Kind:    SignalAdvance,
				Reverse: m.shift,
			})
			res.Consume = true
			m.lastTrigger = ev.Code

		case ev.Code == CodeEscape && st.binding.Cancelable:
			res.Signals = append(res.Signals, Signal{ID: st.binding.ID, Kind: SignalCancel})
			res.Consume = true
			m.lastTrigger = ev.Code
		}
	}

	return res
}
