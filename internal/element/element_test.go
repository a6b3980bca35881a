package element

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextDefaults(t *testing.T) {
	txt := NewText(100, 100, "Hello")

	assert.True(t, strings.HasPrefix(txt.ID, "text-"))
	assert.Equal(t, 100.0, txt.X)
	assert.Equal(t, 100.0, txt.Y)
	assert.Equal(t, "Inter", txt.FontFamily)
	assert.Equal(t, 16.0, txt.FontSize)
	assert.Equal(t, "#000000", txt.Color)
	assert.Equal(t, AlignLeft, txt.Align)
	assert.Equal(t, TransformNone, txt.TextTransform)
	assert.Equal(t, ListNone, txt.ListStyle)
	assert.False(t, txt.Bold || txt.Italic || txt.Underline || txt.Strikethrough)
	assert.Equal(t, 1.0, txt.Opacity)
	assert.True(t, txt.Visible)
	assert.False(t, txt.Locked)
}

func TestNewShapeSizes(t *testing.T) {
	tests := []struct {
		kind ShapeType
		w, h float64
	}{
		{Rectangle, 150, 100},
		{Circle, 100, 100},
		{Ellipse, 100, 100},
		{Triangle, 100, 100},
		{Star, 100, 100},
		{SpeechBubble, 150, 100},
		{ArrowLeft, 150, 80},
		{ArrowRight, 150, 80},
	}
	for _, tt := range tests {
		s := NewShape(tt.kind, 10, 20)
		assert.Equal(t, tt.w, s.Width, tt.kind)
		assert.Equal(t, tt.h, s.Height, tt.kind)
		assert.Equal(t, DefaultFill, s.Fill)
		assert.Equal(t, DefaultStroke, s.Stroke)
		assert.NotEmpty(t, s.Name)
	}
}

func TestNewImageDefaults(t *testing.T) {
	img := NewImage(0, 0, "data:image/png;base64,AAAA")
	assert.Nil(t, img.ColorOverlay)
	assert.True(t, img.Filters.IsNeutral())
	assert.False(t, img.FlipHorizontal)
	assert.False(t, img.FlipVertical)
}

func TestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewShape(Star, 0, 0).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCloneIsDecoupled(t *testing.T) {
	img := NewImage(0, 0, "a.png")
	img.ColorOverlay = &Overlay{Color: "#FF0000", Opacity: 0.5}

	c := img.Clone().(*Image)
	require.Equal(t, img, c)

	c.ColorOverlay.Opacity = 0.1
	c.X = 50
	assert.Equal(t, 0.5, img.ColorOverlay.Opacity)
	assert.Equal(t, 0.0, img.X)
}

func TestCloneKeepsNilPointers(t *testing.T) {
	s := NewShape(Rectangle, 0, 0)
	c := s.Clone().(*Shape)
	assert.Nil(t, c.TextStyle)
	assert.Equal(t, s, c)
}

func TestDuplicate(t *testing.T) {
	s := NewShape(Star, 5, 7)
	s.Fill = "#123456"

	d := Duplicate(s, 20, 20).(*Shape)
	assert.NotEqual(t, s.ID, d.ID)
	assert.Equal(t, 25.0, d.X)
	assert.Equal(t, 27.0, d.Y)
	assert.Equal(t, "Star (copy)", d.Name)
	assert.Equal(t, s.Fill, d.Fill)
	assert.Equal(t, s.ShapeType, d.ShapeType)
}

func TestPatchScopedToVariant(t *testing.T) {
	txt := NewText(0, 0, "hi")
	ShapePatch{
		BasePatch: BasePatch{X: Ptr(42.0)},
		Fill:      Ptr("#FF0000"),
	}.Apply(txt)

	assert.Equal(t, 42.0, txt.X)
	assert.Equal(t, DefaultTextColor, txt.Color)

	TextPatch{Color: Ptr("#00FF00"), Bold: Ptr(true)}.Apply(txt)
	assert.Equal(t, "#00FF00", txt.Color)
	assert.True(t, txt.Bold)
	assert.Equal(t, WeightBold, txt.EffectiveWeight())
}

func TestPatchClamps(t *testing.T) {
	img := NewImage(0, 0, "x.png")
	ImagePatch{
		BasePatch:  BasePatch{Opacity: Ptr(3.0), Width: Ptr(-5.0)},
		Brightness: Ptr(500.0),
		Contrast:   Ptr(-20.0),
	}.Apply(img)

	assert.Equal(t, 1.0, img.Opacity)
	assert.Equal(t, 1.0, img.Width)
	assert.Equal(t, 200.0, img.Filters.Brightness)
	assert.Equal(t, 0.0, img.Filters.Contrast)

	s := NewShape(Rectangle, 0, 0)
	ShapePatch{StrokeWidth: Ptr(-1.0)}.Apply(s)
	assert.Equal(t, 0.0, s.StrokeWidth)
}

func TestImagePatchOverlay(t *testing.T) {
	img := NewImage(0, 0, "x.png")
	ImagePatch{ColorOverlay: &Overlay{Color: "#FF0000", Opacity: 2}}.Apply(img)
	require.NotNil(t, img.ColorOverlay)
	assert.Equal(t, 1.0, img.ColorOverlay.Opacity)

	ImagePatch{ClearOverlay: true}.Apply(img)
	assert.Nil(t, img.ColorOverlay)
}

func TestJSONRoundTrip(t *testing.T) {
	txt := NewText(1, 2, "a\nb")
	txt.ListStyle = ListBullet
	shape := NewShape(SpeechBubble, 3, 4)
	shape.Text = "Hi"
	shape.TextStyle = DefaultCaptionStyle()
	img := NewImage(5, 6, "pic.png")
	img.ColorOverlay = &Overlay{Color: "#00FF00", Opacity: 0.3}

	in := List{txt, shape, img}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"text"`)
	assert.Contains(t, string(data), `"type":"shape"`)
	assert.Contains(t, string(data), `"colorOverlay":{"color":"#00FF00","opacity":0.3}`)

	var out List
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestDecodeFillsDefaults(t *testing.T) {
	e, err := Decode([]byte(`{"type":"shape","shapeType":"arrowRight","x":10,"fontWeight":"bold"}`))
	require.NoError(t, err)

	s := e.(*Shape)
	assert.Equal(t, 10.0, s.X)
	assert.Equal(t, 150.0, s.Width)
	assert.Equal(t, 80.0, s.Height)
	assert.True(t, s.Visible)
	assert.True(t, strings.HasPrefix(s.ID, "shape-"))

	e, err = Decode([]byte(`{"type":"text","id":"t1","fontWeight":"bold","content":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "t1", e.Common().ID)
	assert.Equal(t, WeightBold, e.(*Text).FontWeight)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"video"}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	var l List
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &l))
}
