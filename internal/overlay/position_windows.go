//go:build windows

package overlay

import (
	"image"
	"sync"
	"unsafe"

	"gioui.org/app"
	"gioui.org/io/event"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowPos      = user32.NewProc("SetWindowPos")
	procGetWindowLongW    = user32.NewProc("GetWindowLongW")
	procSetWindowLongW    = user32.NewProc("SetWindowLongW")
	procMonitorFromWindow = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW   = user32.NewProc("GetMonitorInfoW")
	procGetDpiForWindow   = user32.NewProc("GetDpiForWindow")
)

const (
	wsExTopmost    = 0x00000008
	wsExToolWindow = 0x00000080
	wsExNoActivate = 0x08000000

	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020
	swpShowWindow   = 0x0040

	monitorDefaultToNearest = 0x00000002
)

var (
	gwlExStyle  int32 = -20
	hwndTopmost       = ^uintptr(0)
)

type rect struct {
	left, top, right, bottom int32
}

type monitorInfo struct {
	cbSize    uint32
	rcMonitor rect
	rcWork    rect
	dwFlags   uint32
}

// platform keeps the native handle of one overlay window.
type platform struct {
	mu   sync.Mutex
	hwnd uintptr
	size image.Point // dp
}

func (p *platform) shown(_ *app.Window, size image.Point) {
	p.mu.Lock()
	p.size = size
	p.mu.Unlock()
}

func (p *platform) viewEvent(e event.Event) {
	v, ok := e.(app.Win32ViewEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	p.hwnd = v.HWND
	size := p.size
	p.mu.Unlock()

	if v.HWND != 0 {
		go placeWindow(v.HWND, size)
	}
}

func (p *platform) resize(_ *app.Window, size image.Point) {
	p.mu.Lock()
	p.size = size
	hwnd := p.hwnd
	p.mu.Unlock()

	if hwnd != 0 {
		go placeWindow(hwnd, size)
	}
}

// placeWindow centers the window on the monitor of the foreground window,
// keeps it on top and stops it from taking focus.
func placeWindow(hwnd uintptr, size image.Point) {
	dpi := int32(96)
	if procGetDpiForWindow.Find() == nil {
		if d, _, _ := procGetDpiForWindow.Call(hwnd); d != 0 {
			dpi = int32(d)
		}
	}
	w := int32(size.X) * dpi / 96
	h := int32(size.Y) * dpi / 96

	work := rect{right: w, bottom: h}
	fg := windows.GetForegroundWindow()
	if mon, _, _ := procMonitorFromWindow.Call(uintptr(fg), monitorDefaultToNearest); mon != 0 {
		var mi monitorInfo
		mi.cbSize = uint32(unsafe.Sizeof(mi))
		if r, _, _ := procGetMonitorInfoW.Call(mon, uintptr(unsafe.Pointer(&mi))); r != 0 {
			work = mi.rcWork
		}
	}
	x := work.left + (work.right-work.left-w)/2
	y := work.top + (work.bottom-work.top-h)/2

	ex, _, _ := procGetWindowLongW.Call(hwnd, uintptr(gwlExStyle))
	procSetWindowLongW.Call(hwnd, uintptr(gwlExStyle), ex|wsExTopmost|wsExToolWindow|wsExNoActivate)

	procSetWindowPos.Call(hwnd, hwndTopmost,
		uintptr(x), uintptr(y), uintptr(w), uintptr(h),
		swpNoActivate|swpFrameChanged|swpShowWindow)
}
