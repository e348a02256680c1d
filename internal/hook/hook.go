// Package hook перехватывает клавиатуру на уровне ОС и передаёт
// распознанные горячие клавиши координатору через неблокирующую очередь.
//
// ОС вызывает обработчик без контекста, поэтому состояние хранится в одном
// глобальном контейнере: он создаётся при Start и очищается при Stop.
package hook

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"winswitch/internal/hotkey"
	"winswitch/internal/switcher"
)

// Sink принимает намерения. Post не должен блокироваться.
type Sink interface {
	Post(in switcher.Intent)
}

// ErrAlreadyStarted возвращается при повторном Start без Stop.
var ErrAlreadyStarted = errors.New("keyboard hook already started")

type state struct {
	matcher *hotkey.Matcher
	sink    Sink
	blocked atomic.Uint32 // битовая маска заблокированных ID
}

var current atomic.Pointer[state]

// Listener - установленный хук клавиатуры.
type Listener struct {
	st       *state
	backend  backend
	stopOnce sync.Once
	stopErr  error
}

// backend - платформенная часть хука.
type backend interface {
	stop() error
}

// Start устанавливает хук с заданными клавишами.
func Start(bindings []hotkey.Binding, sink Sink) (*Listener, error) {
	if sink == nil {
		return nil, errors.New("hook sink is required")
	}

	st := &state{
		matcher: hotkey.NewMatcher(bindings),
		sink:    sink,
	}
	st.matcher.SetGate(st.allowed)

	if !current.CompareAndSwap(nil, st) {
		return nil, ErrAlreadyStarted
	}

	b, err := startBackend()
	if err != nil {
		current.CompareAndSwap(st, nil)
		return nil, fmt.Errorf("install keyboard hook: %w", err)
	}

	slog.Info("keyboard hook installed", "hotkeys", len(bindings))
	return &Listener{st: st, backend: b}, nil
}

// SetBindings заменяет горячие клавиши без переустановки хука.
func (l *Listener) SetBindings(bindings []hotkey.Binding) {
	l.st.matcher.SetBindings(bindings)
}

// SetBlocked запрещает или разрешает распознавание клавиши id.
// Заблокированный триггер пропускается в систему.
func (l *Listener) SetBlocked(id hotkey.ID, blocked bool) {
	bit := uint32(1) << (id & 31)
	for {
		old := l.st.blocked.Load()
		next := old &^ bit
		if blocked {
			next = old | bit
		}
		if l.st.blocked.CompareAndSwap(old, next) {
			return
		}
	}
}

// Stop снимает хук и очищает глобальное состояние. Идемпотентен.
func (l *Listener) Stop() error {
	l.stopOnce.Do(func() {
		l.stopErr = l.backend.stop()
		current.CompareAndSwap(l.st, nil)
		slog.Info("keyboard hook removed")
	})
	return l.stopErr
}

func (s *state) allowed(id hotkey.ID) bool {
	return s.blocked.Load()&(uint32(1)<<(id&31)) == 0
}

// dispatch обрабатывает событие и сообщает, нужно ли его поглотить.
// Любая ошибка внутри превращается в «пропустить событие».
func dispatch(ev hotkey.Event) (consume bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in keyboard hook", "panic", r)
			consume = false
		}
	}()

	st := current.Load()
	if st == nil {
		return false
	}

	res := st.matcher.Handle(ev)
	for _, sig := range res.Signals {
		in, ok := intentFor(sig)
		if !ok {
			continue
		}
		st.sink.Post(in)
	}
	return res.Consume
}

// intentFor переводит сигнал матчера в намерение координатора.
func intentFor(sig hotkey.Signal) (switcher.Intent, bool) {
	switch sig.ID {
	case hotkey.SwitchApps:
		switch sig.Kind {
		case hotkey.SignalAdvance:
			return switcher.Advance(switcher.IntentAdvanceApps, sig.Reverse), true
		case hotkey.SignalCommit:
			return switcher.Intent{Kind: switcher.IntentCommitApps}, true
		case hotkey.SignalCancel:
			return switcher.Intent{Kind: switcher.IntentCancelApps}, true
		}
	case hotkey.SwitchWindows:
		switch sig.Kind {
		case hotkey.SignalAdvance:
			return switcher.Advance(switcher.IntentAdvanceWindows, sig.Reverse), true
		case hotkey.SignalCommit:
			return switcher.Intent{Kind: switcher.IntentCommitWindows}, true
		}
	}
	return switcher.Intent{}, false
}
