package overlay

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// drawBackground draws a rectangle background.
func drawBackground(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// drawCell draws one candidate: highlight, then the icon or its letter.
func drawCell(gtx layout.Context, th *material.Theme, cfg Config, r image.Rectangle, name string, img *paint.ImageOp, selected bool) {
	defer op.Offset(r.Min).Push(gtx.Ops).Pop()
	size := r.Size()

	if selected {
		fillRounded(gtx, size, cfg.SelectColor)
	}

	iconPx := gtx.Dp(unit.Dp(cfg.Icon))
	defer op.Offset(image.Pt((size.X-iconPx)/2, (size.Y-iconPx)/2)).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(image.Pt(iconPx, iconPx))

	if img != nil {
		widget.Image{Src: *img, Fit: widget.Contain}.Layout(gtx)
		return
	}
	drawLetter(gtx, th, cfg, letter(name))
}

func drawLetter(gtx layout.Context, th *material.Theme, cfg Config, s string) {
	fillRounded(gtx, gtx.Constraints.Max, cfg.LetterColor)
	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Label(th, unit.Sp(24), s)
		lbl.Color = cfg.TextColor
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	})
}

// drawTitle draws the title of the selected window under the cells.
func drawTitle(gtx layout.Context, th *material.Theme, cfg Config, r image.Rectangle, title string) {
	defer op.Offset(r.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(r.Size())
	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Label(th, unit.Sp(13), title)
		lbl.Color = cfg.TextColor
		lbl.Font.Weight = font.Medium
		lbl.MaxLines = 1
		return lbl.Layout(gtx)
	})
}

func fillRounded(gtx layout.Context, size image.Point, col color.NRGBA) {
	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, col, rect.Op(gtx.Ops))
}
