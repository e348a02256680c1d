//go:build windows

package window

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/windows"

	"winswitch/internal/winloop"
)

var (
	procSetWinEventHook = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent  = user32.NewProc("UnhookWinEvent")
)

const (
	eventSystemForeground = 0x0003
	winEventOutOfContext  = 0x0000
	winEventSkipOwnProc   = 0x0002
)

// foregroundFn - текущий получатель событий смены активного окна.
var foregroundFn atomic.Pointer[func(appKey string)]

var winEventProc = windows.NewCallback(func(hook, event, hwnd, idObject, idChild, thread, ts uintptr) uintptr {
	fn := foregroundFn.Load()
	if fn == nil || hwnd == 0 {
		return 0
	}
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid); err != nil {
		return 0
	}
	path, err := processPath(pid)
	if err != nil {
		return 0
	}
	(*fn)(path)
	return 0
})

// ForegroundWatcher сообщает о смене активного приложения.
type ForegroundWatcher struct {
	loop *winloop.Loop
}

// WatchForeground вызывает fn с ключом приложения при каждой смене
// активного окна. Одновременно может работать один наблюдатель.
func WatchForeground(fn func(appKey string)) (*ForegroundWatcher, error) {
	if !foregroundFn.CompareAndSwap(nil, &fn) {
		return nil, errors.New("foreground watcher already running")
	}

	loop, err := winloop.Start("foreground", func() (func(), error) {
		h, _, err := procSetWinEventHook.Call(
			eventSystemForeground, eventSystemForeground,
			0, winEventProc, 0, 0,
			winEventOutOfContext|winEventSkipOwnProc,
		)
		if h == 0 {
			return nil, fmt.Errorf("SetWinEventHook: %w", err)
		}
		return func() { procUnhookWinEvent.Call(h) }, nil
	})
	if err != nil {
		foregroundFn.Store(nil)
		return nil, err
	}
	return &ForegroundWatcher{loop: loop}, nil
}

// Close останавливает наблюдение.
func (w *ForegroundWatcher) Close() error {
	err := w.loop.Stop()
	foregroundFn.Store(nil)
	return err
}
