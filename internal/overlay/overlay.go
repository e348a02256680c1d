// Package overlay provides the floating window with switch candidates.
package overlay

import (
	"image"
	"image/color"
	"sync"
	"unicode"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"winswitch/internal/switcher"
)

const windowTitle = "WinSwitch - overlay"

// Config holds window configuration. Sizes are in dp.
type Config struct {
	Cell        int         // Cell size
	Icon        int         // Icon size inside a cell
	Gap         int         // Gap between cells
	Padding     int         // Window padding
	Title       int         // Title line height
	MaxColumns  int         // Cells per row
	BGColor     color.NRGBA // Background color
	SelectColor color.NRGBA // Selected cell
	LetterColor color.NRGBA // Placeholder for apps without an icon
	TextColor   color.NRGBA // Text color
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Cell:        72,
		Icon:        48,
		Gap:         8,
		Padding:     12,
		Title:       28,
		MaxColumns:  8,
		BGColor:     color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		SelectColor: color.NRGBA{R: 88, G: 166, B: 255, A: 110},
		LetterColor: color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		TextColor:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
	}
}

func (c Config) grid() grid {
	return grid{
		Cell:       c.Cell,
		Gap:        c.Gap,
		Padding:    c.Padding,
		Title:      c.Title,
		MaxColumns: c.MaxColumns,
	}
}

// Window shows the candidates of the app cycle. It implements switcher.Painter.
type Window struct {
	mu     sync.Mutex
	config Config

	candidates []switcher.Candidate
	images     []*paint.ImageOp
	selected   int
	cells      []image.Rectangle // px, from the last frame
	onClick    func(x, y int)

	window   *app.Window
	platform *platform
	running  bool
	stopCh   chan struct{}
}

// New creates an overlay window. Nothing is shown until Paint.
func New(cfg Config) *Window {
	return &Window{config: cfg}
}

// OnClick sets the callback for a mouse press in the window.
// Coordinates are window pixels, suitable for CandidateAt.
func (w *Window) OnClick(fn func(x, y int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClick = fn
}

// Paint shows the window (non-blocking) or redraws it with a new selection.
func (w *Window) Paint(candidates []switcher.Candidate, selected int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	resized := len(candidates) != len(w.candidates)
	if !sameCandidates(w.candidates, candidates) {
		w.images = imageOps(candidates)
	}
	w.candidates = candidates
	w.selected = selected
	size := w.config.grid().size(len(candidates))

	if !w.running {
		w.running = true
		w.stopCh = make(chan struct{})
		w.window = new(app.Window)
		w.platform = &platform{}
		go w.runEventLoop(w.window, w.platform, size, w.stopCh)
		return
	}

	if resized {
		w.platform.resize(w.window, size)
	}
	w.window.Invalidate()
}

// Unpaint closes the window. It does not wait for the window to go away.
func (w *Window) Unpaint() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	w.stopCh = nil
	w.window = nil
	w.platform = nil
	w.candidates = nil
	w.images = nil
	w.cells = nil
}

// CandidateAt returns the index of the cell under the window point (x, y).
func (w *Window) CandidateAt(x, y int) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return -1, false
	}
	return hitTest(w.cells, image.Pt(x, y))
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop(win *app.Window, pl *platform, size image.Point, stop <-chan struct{}) {
	win.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(size.X), unit.Dp(size.Y)),
		app.Decorated(false), // Borderless
	)
	pl.shown(win, size)

	go func() {
		<-stop
		win.Perform(system.ActionClose)
	}()

	// Shaper is not safe for concurrent use, so every window has its own theme.
	th := material.NewTheme()
	var ops op.Ops

	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.draw(gtx, th, win)
			e.Frame(gtx.Ops)
		default:
			pl.viewEvent(e)
		}
	}
}

func (w *Window) draw(gtx layout.Context, th *material.Theme, win *app.Window) {
	w.mu.Lock()
	candidates := w.candidates
	images := w.images
	selected := w.selected
	onClick := w.onClick
	cfg := w.config
	w.mu.Unlock()

	g := cfg.grid().scale(func(v int) int { return gtx.Dp(unit.Dp(v)) })
	cells := g.cells(len(candidates))

	w.mu.Lock()
	if w.window == win {
		w.cells = cells
	}
	w.mu.Unlock()

	for {
		ev, ok := gtx.Event(pointer.Filter{Target: w, Kinds: pointer.Press})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok && onClick != nil {
			onClick(int(e.Position.X), int(e.Position.Y))
		}
	}

	drawBackground(gtx, cfg.BGColor)

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for i, r := range cells {
		var img *paint.ImageOp
		if i < len(images) {
			img = images[i]
		}
		drawCell(gtx, th, cfg, r, candidates[i].Name, img, i == selected)
	}

	if selected >= 0 && selected < len(candidates) {
		c := candidates[selected]
		title := c.Title
		if title == "" {
			title = c.Name
		}
		drawTitle(gtx, th, cfg, g.titleRect(len(candidates)), title)
	}
}

func imageOps(candidates []switcher.Candidate) []*paint.ImageOp {
	out := make([]*paint.ImageOp, len(candidates))
	for i, c := range candidates {
		if c.Icon == nil {
			continue
		}
		img := paint.NewImageOp(c.Icon)
		out[i] = &img
	}
	return out
}

func sameCandidates(a, b []switcher.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Handle != b[i].Handle || a[i].AppKey != b[i].AppKey {
			return false
		}
	}
	return true
}

// letter returns the placeholder shown instead of a missing icon.
func letter(name string) string {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return "?"
}
