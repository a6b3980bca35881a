package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infocanvas/internal/element"
)

func populated(t *testing.T) *Store {
	t.Helper()
	s := newStore(WithCanvasSize(800, 600), WithBackground("#F0F0F0"))
	txt := element.NewText(10, 20, "Quarterly")
	txt.Bold = true
	txt.ListStyle = element.ListBullet
	s.AddElement(txt)

	sh := element.NewShape(element.SpeechBubble, 100, 100)
	sh.Text = "Hello"
	sh.TextStyle = element.DefaultCaptionStyle()
	s.AddElement(sh)

	img := element.NewImage(0, 0, "data:image/png;base64,AAAA")
	img.ColorOverlay = &element.Overlay{Color: "#FF0000", Opacity: 0.5}
	img.FlipHorizontal = true
	s.AddElement(img)

	s.SetZoom(1.5)
	return s
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	src := populated(t)
	data, err := src.CaptureJSON()
	require.NoError(t, err)

	dst := newStore()
	require.NoError(t, dst.Restore(data))

	assert.Equal(t, src.Elements(), dst.Elements())
	w, h := dst.CanvasSize()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)
	assert.Equal(t, "#F0F0F0", dst.BackgroundColor())
	assert.Equal(t, 1.5, dst.Zoom())

	again, err := dst.CaptureJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestCaptureFormat(t *testing.T) {
	data, err := populated(t).CaptureJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, FormatVersion, doc["version"])
	assert.Equal(t, "2024-05-01T12:00:00Z", doc["timestamp"])

	elems := doc["elements"].([]any)
	require.Len(t, elems, 3)
	first := elems[0].(map[string]any)
	assert.Equal(t, "text", first["type"])
	assert.Equal(t, "Quarterly", first["content"])
	assert.Equal(t, "image", elems[2].(map[string]any)["type"])
}

func TestCaptureEmptyStore(t *testing.T) {
	data, err := newStore().CaptureJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"elements":[]`)
}

func TestRestoreRejectsMissingElements(t *testing.T) {
	s := populated(t)
	before, err := s.CaptureJSON()
	require.NoError(t, err)
	past := len(s.History().Past())

	for _, doc := range []string{`{}`, `{"elements":{}}`, `{"elements":null}`, `{"elements":"x"}`} {
		err := s.Restore([]byte(doc))
		assert.ErrorIs(t, err, ErrMissingElements, doc)
	}

	after, err := s.CaptureJSON()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, s.History().Past(), past)
}

func TestRestoreRejectsMalformed(t *testing.T) {
	s := populated(t)
	assert.ErrorIs(t, s.Restore([]byte(`not json`)), ErrInvalidDocument)
	assert.ErrorIs(t, s.Restore([]byte(`{"elements":[{"type":"video"}]}`)), ErrInvalidDocument)
	assert.ErrorIs(t, s.Restore([]byte(`{"version":"2.0","elements":[]}`)), ErrUnsupportedVersion)
	assert.Equal(t, 3, s.Len())
}

func TestRestoreMinimalDocument(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Restore([]byte(`{"elements":[{"type":"shape","shapeType":"star","x":5}]}`)))
	require.Equal(t, 1, s.Len())

	e := s.Elements()[0].(*element.Shape)
	assert.Equal(t, 5.0, e.X)
	assert.Equal(t, 100.0, e.Width)
	assert.NotEmpty(t, e.ID)

	w, h := s.CanvasSize()
	assert.Equal(t, float64(DefaultCanvasWidth), w)
	assert.Equal(t, float64(DefaultCanvasHeight), h)
}

func TestRestoreClampsCanvasSize(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Restore([]byte(`{"elements":[],"canvasWidth":1e9,"canvasHeight":1e9}`)))
	w, h := s.CanvasSize()
	assert.Equal(t, float64(MaxCanvasSize), w)
	assert.Equal(t, float64(MaxCanvasSize), h)

	snap := s.Capture()
	assert.Equal(t, float64(MaxCanvasSize), snap.CanvasWidth)
}

func TestRestoreIsUndoable(t *testing.T) {
	s := populated(t)
	require.NoError(t, s.Restore([]byte(`{"elements":[]}`)))
	assert.Equal(t, 0, s.Len())
	require.True(t, s.Undo())
	assert.Equal(t, 3, s.Len())
}

func TestRestoreFixesDuplicateIDs(t *testing.T) {
	s := newStore()
	doc := `{"elements":[{"type":"text","id":"a"},{"type":"text","id":"a"}]}`
	require.NoError(t, s.Restore([]byte(doc)))
	elems := s.Elements()
	require.Len(t, elems, 2)
	assert.Equal(t, "a", elems[0].Common().ID)
	assert.NotEqual(t, "a", elems[1].Common().ID)
}

func TestCaptureIsDecoupled(t *testing.T) {
	s := populated(t)
	snap := s.Capture()
	snap.Elements[0].Common().X = 999
	e := s.Elements()[0]
	assert.Equal(t, 10.0, e.Common().X)
}
