//go:build windows

package hook

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"winswitch/internal/winloop"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
)

const (
	whKeyboardLL = 13
	hcAction     = 0
)

// kbdllhookstruct повторяет раскладку Win32 KBDLLHOOKSTRUCT.
type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

var keyboardProc = windows.NewCallback(func(code int, wParam, lParam uintptr) uintptr {
	if code == hcAction {
		kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))
		if dispatch(eventFromLL(kb.scanCode, kb.flags)) {
			return 1
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return r
})

type windowsBackend struct {
	loop *winloop.Loop
}

func startBackend() (backend, error) {
	loop, err := winloop.Start("keyboard-hook", func() (func(), error) {
		var hmod windows.Handle
		if err := windows.GetModuleHandleEx(0, nil, &hmod); err != nil {
			return nil, fmt.Errorf("GetModuleHandleEx: %w", err)
		}

		h, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardProc, uintptr(hmod), 0)
		if h == 0 {
			return nil, fmt.Errorf("SetWindowsHookExW: %w", err)
		}

		return func() {
			procUnhookWindowsHookEx.Call(h)
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &windowsBackend{loop: loop}, nil
}

func (b *windowsBackend) stop() error {
	return b.loop.Stop()
}
