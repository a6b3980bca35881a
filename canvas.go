package main

import (
	"math"

	"infocanvas/internal/document"
	"infocanvas/internal/element"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Preview draws a document's element bounds onto a grid of terminal cells.
// It is a layout map, not a rendering: each element is its bounding box
// with the first letters of its label inside.
type Preview struct {
	Width, Height int
	Zoom          float64
	PanX, PanY    float64
	Selected      map[string]bool
	Cursor        string
}

// fit is the number of cells per document unit horizontally at zoom 1.
func (p Preview) fit(canvasW, canvasH float64) float64 {
	if canvasW <= 0 || canvasH <= 0 {
		return 1
	}
	return math.Min(float64(p.Width)/canvasW, float64(p.Height)*cellAspect/canvasH)
}

func (p Preview) Render(snap *document.Snapshot) []string {
	width, height := max(p.Width, 1), max(p.Height, 1)
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	sx := p.fit(snap.CanvasWidth, snap.CanvasHeight) * p.Zoom
	sy := sx / cellAspect
	toCell := func(x, y float64) (int, int) {
		return int(math.Floor((x - p.PanX) * sx)), int(math.Floor((y - p.PanY) * sy))
	}

	// page edge
	x1, y1 := toCell(snap.CanvasWidth, snap.CanvasHeight)
	x0, y0 := toCell(0, 0)
	drawFrame(canvas, x0, y0, x1-x0+1, y1-y0+1, frameRunes{'·', '·', '·'})

	elems := element.CloneAll(snap.Elements)
	document.SortByZ(elems)
	for _, e := range elems {
		b := e.Common()
		bx, by := toCell(b.X, b.Y)
		bw := max(int(math.Round(b.Width*sx)), 2)
		bh := max(int(math.Round(b.Height*sy)), 2)

		runes := frameRunes{'+', '-', '|'}
		switch {
		case p.Selected[b.ID]:
			runes = frameRunes{'#', '#', '#'}
		case !b.Visible:
			runes = frameRunes{'.', '.', '.'}
		}
		fillRect(canvas, bx+1, by+1, bw-2, bh-2)
		drawFrame(canvas, bx, by, bw, bh, runes)

		label := elementIcon(e) + " " + elementLabel(e)
		if b.ID == p.Cursor {
			label = ">" + label
		}
		if bh > 2 {
			drawLabel(canvas, bx+1, by+1, bw-2, label)
		}
	}

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

type frameRunes struct {
	corner, horizontal, vertical rune
}

func setCell(canvas [][]rune, x, y int, r rune) {
	if y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y]) {
		canvas[y][x] = r
	}
}

func drawFrame(canvas [][]rune, boxX, boxY, w, h int, fr frameRunes) {
	if w < 1 || h < 1 {
		return
	}
	for x := boxX; x < boxX+w; x++ {
		r := fr.horizontal
		if x == boxX || x == boxX+w-1 {
			r = fr.corner
		}
		setCell(canvas, x, boxY, r)
		setCell(canvas, x, boxY+h-1, r)
	}
	for y := boxY + 1; y < boxY+h-1; y++ {
		setCell(canvas, boxX, y, fr.vertical)
		setCell(canvas, boxX+w-1, y, fr.vertical)
	}
}

// fillRect blanks the inside of a box so it hides what lies beneath.
func fillRect(canvas [][]rune, boxX, boxY, w, h int) {
	for y := boxY; y < boxY+h; y++ {
		for x := boxX; x < boxX+w; x++ {
			setCell(canvas, x, y, ' ')
		}
	}
}

func drawLabel(canvas [][]rune, x, y, maxWidth int, label string) {
	if maxWidth <= 0 {
		return
	}
	for i, r := range []rune(truncate(label, maxWidth)) {
		setCell(canvas, x+i, y, r)
	}
}
