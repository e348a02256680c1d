//go:build windows

package window

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procGetWindow            = user32.NewProc("GetWindow")
	procGetWindowLongPtrW    = user32.NewProc("GetWindowLongPtrW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsIconic             = user32.NewProc("IsIconic")
	procShowWindow           = user32.NewProc("ShowWindow")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procBringWindowToTop     = user32.NewProc("BringWindowToTop")
	procSendInput            = user32.NewProc("SendInput")

	procDwmGetWindowAttribute = dwmapi.NewProc("DwmGetWindowAttribute")
)

const (
	gwOwner    = 4
	gwlExStyle = ^uintptr(20 - 1) // -20

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	wsExNoActivate = 0x08000000

	dwmwaCloaked      = 14
	dwmCloakedApp     = 0x1
	dwmCloakedShell   = 0x2
	dwmCloakedInherit = 0x4

	swRestore = 9

	inputKeyboard  = 1
	keyEventFKeyUp = 0x0002
)

// Desktop перечисляет и активирует окна через Win32.
type Desktop struct {
	self uint32
}

// NewDesktop создаёт Desktop для текущего процесса.
func NewDesktop() (*Desktop, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	return &Desktop{self: uint32(os.Getpid())}, nil
}

// ListWindows возвращает окна, сгруппированные по исполняемому файлу,
// в z-порядке сверху вниз.
func (d *Desktop) ListWindows(opts ListOptions) ([]Group, error) {
	var hwnds []windows.HWND
	if err := windows.EnumWindows(enumWindowsProc, unsafe.Pointer(&hwnds)); err != nil {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}

	paths := make(map[uint32]string)
	elevated := make(map[uint32]bool)

	var (
		keys []string
		wins []Window
	)
	for _, hwnd := range hwnds {
		if !isAltTabWindow(hwnd) {
			continue
		}
		if c := cloaked(hwnd); c&(dwmCloakedApp|dwmCloakedInherit) != 0 ||
			(opts.CurrentDesktopOnly && c&dwmCloakedShell != 0) {
			continue
		}
		minimized := isIconic(hwnd)
		if opts.IgnoreMinimized && minimized {
			continue
		}

		var pid uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil || pid == d.self {
			continue
		}

		path, ok := paths[pid]
		if !ok {
			p, err := processPath(pid)
			if err != nil {
				slog.Debug("skip window, cannot query process", "pid", pid, "error", err)
			}
			path = p
			paths[pid] = p
			elevated[pid] = processElevated(pid)
		}
		if path == "" {
			continue
		}
		if !opts.Elevated && elevated[pid] {
			continue
		}

		keys = append(keys, path)
		wins = append(wins, Window{
			Handle:    Handle(hwnd),
			Title:     windowText(hwnd),
			Minimized: minimized,
		})
	}

	return groupBy(keys, wins), nil
}

// Foreground возвращает активное окно.
func (d *Desktop) Foreground() Handle {
	return Handle(windows.GetForegroundWindow())
}

// Activate разворачивает окно при необходимости и делает его активным.
func (d *Desktop) Activate(h Handle) error {
	hwnd := windows.HWND(h)
	if !windows.IsWindow(hwnd) {
		return ErrGone
	}

	if isIconic(hwnd) {
		procShowWindow.Call(uintptr(hwnd), swRestore)
	}

	// Пустое нажатие снимает запрет SetForegroundWindow для фонового процесса
	unlockForeground()

	if r, _, err := procSetForegroundWindow.Call(uintptr(hwnd)); r == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", err)
	}
	procBringWindowToTop.Call(uintptr(hwnd))
	return nil
}

var enumWindowsProc = windows.NewCallback(func(hwnd windows.HWND, lparam uintptr) uintptr {
	list := (*[]windows.HWND)(unsafe.Pointer(lparam))
	*list = append(*list, hwnd)
	return 1
})

// isAltTabWindow повторяет правила системного Alt+Tab: видимое окно
// без владельца, не tool window, с заголовком.
func isAltTabWindow(hwnd windows.HWND) bool {
	if !windows.IsWindowVisible(hwnd) {
		return false
	}
	if owner, _, _ := procGetWindow.Call(uintptr(hwnd), gwOwner); owner != 0 {
		return false
	}
	exStyle, _, _ := procGetWindowLongPtrW.Call(uintptr(hwnd), gwlExStyle)
	if exStyle&wsExToolWindow != 0 {
		return false
	}
	if exStyle&wsExNoActivate != 0 && exStyle&wsExAppWindow == 0 {
		return false
	}
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	return n > 0
}

func cloaked(hwnd windows.HWND) uint32 {
	if procDwmGetWindowAttribute.Find() != nil {
		return 0
	}
	var v uint32
	r, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(hwnd),
		dwmwaCloaked,
		uintptr(unsafe.Pointer(&v)),
		unsafe.Sizeof(v),
	)
	if r != 0 {
		return 0
	}
	return v
}

func isIconic(hwnd windows.HWND) bool {
	r, _, _ := procIsIconic.Call(uintptr(hwnd))
	return r != 0
}

func windowText(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func processPath(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return strings.ToLower(windows.UTF16ToString(buf[:size])), nil
}

func processElevated(pid uint32) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		// Нет доступа к процессу обычно означает, что он повышен
		return true
	}
	defer windows.CloseHandle(h)

	var token windows.Token
	if err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token); err != nil {
		return true
	}
	defer token.Close()
	return token.IsElevated()
}

// IsElevated сообщает, запущен ли текущий процесс с повышенными правами.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

// unlockForeground отправляет отпускание несуществующей клавиши:
// после ввода система разрешает процессу сменить активное окно.
func unlockForeground() {
	in := input{
		inputType: inputKeyboard,
		ki:        keyboardInput{dwFlags: keyEventFKeyUp},
	}
	procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
}
