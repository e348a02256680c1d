//go:build !windows && !linux

package overlay

import (
	"image"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/unit"
)

// Window positioning is left to the system on this OS.
type platform struct{}

func (p *platform) shown(*app.Window, image.Point) {}

func (p *platform) viewEvent(event.Event) {}

func (p *platform) resize(win *app.Window, size image.Point) {
	win.Option(app.Size(unit.Dp(size.X), unit.Dp(size.Y)))
}
