package pathgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infocanvas/internal/element"
)

func TestTriangle(t *testing.T) {
	assert.Equal(t, "M 50 0 L 100 100 L 0 100 Z", Triangle(100, 100))
	assert.Equal(t, "M 60 0 L 120 40 L 0 40 Z", Triangle(120, 40))
}

func TestArrows(t *testing.T) {
	assert.Equal(t, "M 0 20 L 105 20 L 105 0 L 150 40 L 105 80 L 105 60 L 0 60 Z", ArrowRight(150, 80))
	assert.Equal(t, "M 150 20 L 45 20 L 45 0 L 0 40 L 45 80 L 45 60 L 150 60 Z", ArrowLeft(150, 80))

	// head width is capped by the height on wide, flat arrows
	assert.Equal(t, "M 0 2.5 L 390 2.5 L 390 0 L 400 5 L 390 10 L 390 7.5 L 0 7.5 Z", ArrowRight(400, 10))
}

func TestStar(t *testing.T) {
	cmds, err := Parse(Star(100, 100))
	require.NoError(t, err)
	require.Len(t, cmds, 11)

	assert.Equal(t, byte('M'), cmds[0].Op)
	assert.Equal(t, []float64{50, 0}, cmds[0].Args)
	assert.Equal(t, byte('Z'), cmds[10].Op)

	for i, c := range cmds[:10] {
		dx, dy := c.Args[0]-50, c.Args[1]-50
		r := math.Hypot(dx, dy)
		want := 50.0
		if i%2 == 1 {
			want = 20
		}
		assert.InDelta(t, want, r, 0.01, "vertex %d", i)
	}
}

func TestStarUsesShorterSide(t *testing.T) {
	cmds, err := Parse(Star(200, 100))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 0}, cmds[0].Args)
}

func TestSpeechBubble(t *testing.T) {
	d := SpeechBubble(150, 100, 10)
	assert.Contains(t, d, "L 50 85 L 30 100 L 30 85")

	cmds, err := Parse(d)
	require.NoError(t, err)
	maxY := 0.0
	for _, c := range cmds {
		for k := 1; k < len(c.Args); k += 2 {
			maxY = math.Max(maxY, c.Args[k])
		}
	}
	assert.Equal(t, 100.0, maxY)
}

func TestSpeechBubbleTailIsFixedSize(t *testing.T) {
	assert.Contains(t, SpeechBubble(400, 300, 10), "L 100 285 L 80 300 L 80 285")
}

func TestFor(t *testing.T) {
	for _, kind := range []element.ShapeType{element.Triangle, element.Star, element.SpeechBubble, element.ArrowLeft, element.ArrowRight} {
		d, ok := For(kind, 100, 80, 0)
		assert.True(t, ok, kind)
		assert.NotEmpty(t, d)
	}
	for _, kind := range []element.ShapeType{element.Rectangle, element.Circle, element.Ellipse, "hexagon"} {
		_, ok := For(kind, 100, 80, 0)
		assert.False(t, ok, kind)
	}
}

func TestParseRelativeAndShorthand(t *testing.T) {
	cmds, err := Parse("m10,10 h20 v5 l-5 5 10 0 z")
	require.NoError(t, err)
	assert.Equal(t, []Command{
		{'M', []float64{10, 10}},
		{'L', []float64{30, 10}},
		{'L', []float64{30, 15}},
		{'L', []float64{25, 20}},
		{'L', []float64{35, 20}},
		{'Z', nil},
	}, cmds)
}

func TestParseImplicitLineAfterMove(t *testing.T) {
	cmds, err := Parse("M 0 0 10 0 10 10")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, byte('L'), cmds[1].Op)
	assert.Equal(t, []float64{10, 10}, cmds[2].Args)
}

func TestParseSmoothQuadratic(t *testing.T) {
	cmds, err := Parse("M0 0 Q 5 10 10 0 T 20 0")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, []float64{15, -10, 20, 0}, cmds[2].Args)
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{"10 10", "M 0", "M 0 0 A 1 1 0 0 0 5 5", "M 0 0 Z 4"} {
		_, err := Parse(d)
		assert.ErrorIs(t, err, ErrSyntax, d)
	}
}
