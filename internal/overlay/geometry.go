package overlay

import "image"

// grid describes the cell layout in a single unit (dp or px).
type grid struct {
	Cell       int
	Gap        int
	Padding    int
	Title      int // height of the title line under the cells
	MaxColumns int
}

func (g grid) columns(n int) int {
	if n < 1 {
		return 0
	}
	if g.MaxColumns > 0 && n > g.MaxColumns {
		return g.MaxColumns
	}
	return n
}

func (g grid) rows(n int) int {
	cols := g.columns(n)
	if cols == 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// size returns the window size needed for n cells.
func (g grid) size(n int) image.Point {
	cols, rows := g.columns(n), g.rows(n)
	w := 2 * g.Padding
	h := 2*g.Padding + g.Title
	if cols > 0 {
		w += cols*g.Cell + (cols-1)*g.Gap
		h += rows*g.Cell + (rows-1)*g.Gap
	}
	return image.Pt(w, h)
}

// cells returns the rectangle of every cell, row by row.
func (g grid) cells(n int) []image.Rectangle {
	cols := g.columns(n)
	if cols == 0 {
		return nil
	}
	out := make([]image.Rectangle, n)
	step := g.Cell + g.Gap
	for i := range out {
		x := g.Padding + (i%cols)*step
		y := g.Padding + (i/cols)*step
		out[i] = image.Rect(x, y, x+g.Cell, y+g.Cell)
	}
	return out
}

// titleRect returns the area of the title line.
func (g grid) titleRect(n int) image.Rectangle {
	sz := g.size(n)
	return image.Rect(g.Padding, sz.Y-g.Padding-g.Title, sz.X-g.Padding, sz.Y-g.Padding)
}

func (g grid) scale(f func(int) int) grid {
	return grid{
		Cell:       f(g.Cell),
		Gap:        f(g.Gap),
		Padding:    f(g.Padding),
		Title:      f(g.Title),
		MaxColumns: g.MaxColumns,
	}
}

// hitTest returns the index of the cell containing p.
func hitTest(cells []image.Rectangle, p image.Point) (int, bool) {
	for i, r := range cells {
		if p.In(r) {
			return i, true
		}
	}
	return -1, false
}
