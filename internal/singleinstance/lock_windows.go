//go:build windows

package singleinstance

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/windows"
)

// Lock держит именованный мьютекс. Ядро освобождает его при завершении процесса.
type Lock struct {
	handle windows.Handle
}

func mutexName(name string) string { return `Local\` + name }

func eventName(name string) string { return `Local\` + name + "-reload" }

// TryLock пытается захватить именованный мьютекс.
func TryLock(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("lock name is required")
	}
	nameUTF16, err := windows.UTF16PtrFromString(mutexName(name))
	if err != nil {
		return nil, fmt.Errorf("invalid mutex name %q: %w", name, err)
	}
	h, err := windows.CreateMutex(nil, true, nameUTF16)
	if err == windows.ERROR_ALREADY_EXISTS {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return nil, fmt.Errorf("CreateMutex %q: %w", name, err)
	}
	return &Lock{handle: h}, nil
}

// Release закрывает мьютекс. Безопасен для nil и идемпотентен.
func (l *Lock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(l.handle)
	l.handle = 0
	return err
}

// SignalReload просит работающую копию перечитать конфиг.
func SignalReload(name string) error {
	nameUTF16, err := windows.UTF16PtrFromString(eventName(name))
	if err != nil {
		return err
	}
	h, err := windows.OpenEvent(windows.EVENT_MODIFY_STATE, false, nameUTF16)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotRunning, err)
	}
	defer windows.CloseHandle(h)

	if err := windows.SetEvent(h); err != nil {
		return fmt.Errorf("SetEvent: %w", err)
	}
	return nil
}

// ReloadListener ждёт сигналов перезагрузки в отдельной горутине.
type ReloadListener struct {
	event    windows.Handle
	stop     windows.Handle
	done     chan struct{}
	stopOnce sync.Once
}

// ListenReload создаёт именованное событие и вызывает fn на каждый сигнал.
func ListenReload(name string, fn func()) (*ReloadListener, error) {
	nameUTF16, err := windows.UTF16PtrFromString(eventName(name))
	if err != nil {
		return nil, err
	}
	ev, err := windows.CreateEvent(nil, 0, 0, nameUTF16)
	if err != nil && err != windows.ERROR_ALREADY_EXISTS {
		return nil, fmt.Errorf("CreateEvent: %w", err)
	}
	stop, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(ev)
		return nil, fmt.Errorf("CreateEvent: %w", err)
	}

	l := &ReloadListener{event: ev, stop: stop, done: make(chan struct{})}
	go l.run(fn)
	return l, nil
}

func (l *ReloadListener) run(fn func()) {
	defer close(l.done)
	handles := []windows.Handle{l.event, l.stop}
	for {
		r, err := windows.WaitForMultipleObjects(handles, false, windows.INFINITE)
		if err != nil {
			slog.Error("wait for reload event failed", "error", err)
			return
		}
		switch r {
		case windows.WAIT_OBJECT_0:
			fn()
		default:
			return
		}
	}
}

// Close останавливает ожидание. Идемпотентен.
func (l *ReloadListener) Close() error {
	l.stopOnce.Do(func() {
		windows.SetEvent(l.stop)
		<-l.done
		windows.CloseHandle(l.event)
		windows.CloseHandle(l.stop)
	})
	return nil
}
