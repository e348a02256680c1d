//go:build windows

package window

import (
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	gdi32 = windows.NewLazySystemDLL("gdi32.dll")

	procGetClassLongPtrW    = user32.NewProc("GetClassLongPtrW")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
	procGetIconInfo         = user32.NewProc("GetIconInfo")

	procGetObjectW         = gdi32.NewProc("GetObjectW")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procGetDIBits          = gdi32.NewProc("GetDIBits")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
)

const (
	wmGetIcon       = 0x007F
	iconBig         = 1
	smtoAbortIfHung = 0x0002
	gclpHIcon       = ^uintptr(14 - 1) // -14

	dibRGBColors = 0
)

type iconInfo struct {
	fIcon    int32
	xHotspot uint32
	yHotspot uint32
	hbmMask  windows.Handle
	hbmColor windows.Handle
}

type bitmap struct {
	bmType       int32
	bmWidth      int32
	bmHeight     int32
	bmWidthBytes int32
	bmPlanes     uint16
	bmBitsPixel  uint16
	bmBits       uintptr
}

type bitmapInfoHeader struct {
	biSize          uint32
	biWidth         int32
	biHeight        int32
	biPlanes        uint16
	biBitCount      uint16
	biCompression   uint32
	biSizeImage     uint32
	biXPelsPerMeter int32
	biYPelsPerMeter int32
	biClrUsed       uint32
	biClrImportant  uint32
}

func loadIcon(h Handle) image.Image {
	hicon := windowIcon(windows.HWND(h))
	if hicon == 0 {
		return nil
	}
	return iconToImage(hicon)
}

func windowIcon(hwnd windows.HWND) uintptr {
	var hicon uintptr
	r, _, _ := procSendMessageTimeoutW.Call(
		uintptr(hwnd), wmGetIcon, iconBig, 0,
		smtoAbortIfHung, 100, uintptr(unsafe.Pointer(&hicon)),
	)
	if r != 0 && hicon != 0 {
		return hicon
	}
	hicon, _, _ = procGetClassLongPtrW.Call(uintptr(hwnd), gclpHIcon)
	return hicon
}

func iconToImage(hicon uintptr) image.Image {
	var info iconInfo
	if r, _, _ := procGetIconInfo.Call(hicon, uintptr(unsafe.Pointer(&info))); r == 0 {
		return nil
	}
	defer procDeleteObject.Call(uintptr(info.hbmMask))
	if info.hbmColor == 0 {
		return nil
	}
	defer procDeleteObject.Call(uintptr(info.hbmColor))

	var bm bitmap
	if r, _, _ := procGetObjectW.Call(uintptr(info.hbmColor), unsafe.Sizeof(bm), uintptr(unsafe.Pointer(&bm))); r == 0 {
		return nil
	}
	w, h := int(bm.bmWidth), int(bm.bmHeight)
	if w <= 0 || h <= 0 {
		return nil
	}

	hdc, _, _ := procCreateCompatibleDC.Call(0)
	if hdc == 0 {
		return nil
	}
	defer procDeleteDC.Call(hdc)

	hdr := bitmapInfoHeader{
		biWidth:    int32(w),
		biHeight:   -int32(h), // сверху вниз
		biPlanes:   1,
		biBitCount: 32,
	}
	hdr.biSize = uint32(unsafe.Sizeof(hdr))

	buf := make([]byte, w*h*4)
	r, _, _ := procGetDIBits.Call(
		hdc, uintptr(info.hbmColor), 0, uintptr(h),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&hdr)), dibRGBColors,
	)
	if r == 0 {
		return nil
	}
	return bgraToImage(buf, w, h)
}
