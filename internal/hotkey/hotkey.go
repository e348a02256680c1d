// Package hotkey распознаёт глобальные горячие клавиши переключателя
// по скан-кодам, которые присылает хук клавиатуры.
package hotkey

import (
	"golang.design/x/hotkey/mainthread"
)

// RunOnMainThread запускает fn на главном потоке ОС.
// Нужно для tray и оверлея на macOS.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
