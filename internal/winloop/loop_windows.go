//go:build windows

package winloop

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetMessageW        = user32.NewProc("GetMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessageW   = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
	procPeekMessageW       = user32.NewProc("PeekMessageW")
)

const (
	wmQuit     = 0x0012
	pmNoRemove = 0x0000

	stopTimeout = 2 * time.Second
)

type point struct {
	x int32
	y int32
}

// msg повторяет раскладку Win32 MSG.
type msg struct {
	hWnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// Setup выполняется на потоке цикла до первого GetMessage.
// Возвращённая cleanup вызывается на том же потоке при выходе.
type Setup func() (cleanup func(), err error)

type ready struct {
	threadID uint32
	err      error
}

// Loop - запущенный поток с очередью сообщений.
type Loop struct {
	name     string
	threadID uint32
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// Start запускает поток, вызывает на нём setup и крутит цикл сообщений.
// Ошибка setup возвращается из Start, поток при этом завершается.
func Start(name string, setup Setup) (*Loop, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}

	readyCh := make(chan ready, 1)
	l := &Loop{name: name, done: make(chan struct{})}

	go l.run(setup, readyCh)

	r := <-readyCh
	if r.err != nil {
		<-l.done
		return nil, r.err
	}
	l.threadID = r.threadID
	return l, nil
}

// Done закрывается, когда поток цикла завершился.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stop посылает WM_QUIT и ждёт завершения потока. Идемпотентен.
func (l *Loop) Stop() error {
	l.stopOnce.Do(func() {
		r, _, err := procPostThreadMessageW.Call(uintptr(l.threadID), wmQuit, 0, 0)
		if r == 0 {
			l.stopErr = fmt.Errorf("post WM_QUIT to %s loop: %w", l.name, err)
		}

		timer := time.NewTimer(stopTimeout)
		defer timer.Stop()

		select {
		case <-l.done:
		case <-timer.C:
			slog.Warn("message loop stop timed out", "loop", l.name)
			l.stopErr = errors.Join(l.stopErr, fmt.Errorf("%s loop stop timed out", l.name))
		}
	})
	return l.stopErr
}

func (l *Loop) run(setup Setup, readyCh chan<- ready) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	threadID := windows.GetCurrentThreadId()

	// PeekMessage создаёт очередь потока, чтобы Stop мог доставить WM_QUIT
	var qmsg msg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&qmsg)), 0, 0, 0, pmNoRemove)

	cleanup, err := setup()
	if err != nil {
		readyCh <- ready{err: err}
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	readyCh <- ready{threadID: threadID}

	for {
		var m msg
		ret, _, lastErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			slog.Warn("GetMessageW failed, exiting loop", "loop", l.name, "error", lastErr)
			return
		case 0:
			slog.Debug("message loop received WM_QUIT", "loop", l.name)
			return
		}

		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}
