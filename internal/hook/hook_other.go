//go:build !windows

package hook

import (
	"time"

	gohook "github.com/robotn/gohook"

	"winswitch/internal/hotkey"
)

// На Linux и macOS libuiohook только наблюдает за клавиатурой:
// поглотить событие нельзя, решение Consume игнорируется.
type uiohookBackend struct {
	stopCh chan struct{}
	doneCh chan struct{}
}

func startBackend() (backend, error) {
	evChan := gohook.Start()
	b := &uiohookBackend{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go b.run(evChan)
	return b, nil
}

func (b *uiohookBackend) run(evChan chan gohook.Event) {
	defer close(b.doneCh)
	for {
		select {
		case <-b.stopCh:
			return
		case ev, ok := <-evChan:
			if !ok {
				return
			}
			switch ev.Kind {
			case gohook.KeyHold:
				dispatch(hotkey.Event{Code: hotkey.ScanCode(ev.Keycode), Pressed: true})
			case gohook.KeyUp:
				dispatch(hotkey.Event{Code: hotkey.ScanCode(ev.Keycode)})
			}
		}
	}
}

func (b *uiohookBackend) stop() error {
	close(b.stopCh)
	gohook.End()

	select {
	case <-b.doneCh:
	case <-time.After(time.Second):
	}
	return nil
}
