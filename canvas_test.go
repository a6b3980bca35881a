package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infocanvas/internal/document"
	"infocanvas/internal/element"
)

func previewOf(t *testing.T, s *document.Store, selected map[string]bool) [][]rune {
	t.Helper()
	p := Preview{Width: 50, Height: 25, Zoom: 1, Selected: selected}
	lines := p.Render(s.Capture())
	require.Len(t, lines, 25)
	grid := make([][]rune, len(lines))
	for i, l := range lines {
		grid[i] = []rune(l)
		require.Len(t, grid[i], 50)
	}
	return grid
}

func TestPreviewPageFrame(t *testing.T) {
	// 100x50 in a 50x25 grid: half a cell per unit across, a quarter down
	s := document.New(document.WithCanvasSize(100, 50))
	grid := previewOf(t, s, nil)

	assert.Equal(t, strings.Repeat("·", 50), string(grid[0]))
	assert.Equal(t, strings.Repeat("·", 50), string(grid[12]))
	assert.Equal(t, '·', grid[6][0])
	assert.Equal(t, ' ', grid[6][10])
	assert.Equal(t, strings.Repeat(" ", 50), string(grid[20]))
}

func TestPreviewElementBox(t *testing.T) {
	s := document.New(document.WithCanvasSize(100, 50))
	rect := element.NewShape(element.Rectangle, 20, 20)
	rect.Width, rect.Height = 40, 20
	id := s.AddElement(rect)

	grid := previewOf(t, s, nil)
	assert.Equal(t, '+', grid[5][10])
	assert.Equal(t, '-', grid[5][11])
	assert.Equal(t, '+', grid[5][29])
	assert.Equal(t, '|', grid[6][10])
	assert.Equal(t, '+', grid[9][10])
	assert.Equal(t, "▭ Rectangle", string(grid[6][11:22]))

	grid = previewOf(t, s, map[string]bool{id: true})
	assert.Equal(t, '#', grid[5][10])
	assert.Equal(t, '#', grid[6][10])
}

func TestPreviewHiddenAndStacked(t *testing.T) {
	s := document.New(document.WithCanvasSize(100, 50))
	below := element.NewShape(element.Rectangle, 20, 20)
	below.Width, below.Height = 40, 20
	s.AddElement(below)
	above := element.NewShape(element.Circle, 30, 24)
	above.Width, above.Height = 40, 20
	above.Visible = false
	s.AddElement(above)

	grid := previewOf(t, s, nil)
	// the hidden circle still sits on top and blanks what it covers
	assert.Equal(t, '.', grid[6][15])
	assert.Equal(t, ' ', grid[8][29])
	assert.Equal(t, '+', grid[5][10])
}

func TestPreviewZoomAndPan(t *testing.T) {
	s := document.New(document.WithCanvasSize(100, 50))
	rect := element.NewShape(element.Rectangle, 50, 20)
	rect.Width, rect.Height = 20, 20
	s.AddElement(rect)

	p := Preview{Width: 50, Height: 25, Zoom: 2, PanX: 40, PanY: 10}
	grid := p.Render(s.Capture())
	// (50-40)*0.5*2 = 10 across, (20-10)*0.25*2 = 5 down
	assert.Equal(t, '+', []rune(grid[5])[10])
}
