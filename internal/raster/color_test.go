package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#3B82F6", color.NRGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#FF000080", color.NRGBA{R: 255, A: 0x80}},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
		{"rgba(255,0,0,0.5)", color.NRGBA{R: 255, A: 128}},
		{"rgb(100% 0% 0%)", color.NRGBA{R: 255, A: 255}},
		{"red", color.NRGBA{R: 255, A: 255}},
		{" White ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"transparent", color.NRGBA{}},
		{"none", color.NRGBA{}},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"#12", "#GGGGGG", "rgb(1,2)", "chartreuse-ish", "rgb(a,b,c)"} {
		_, ok := ParseColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsTransparent(t *testing.T) {
	assert.True(t, isTransparent("none"))
	assert.True(t, isTransparent("rgba(0,0,0,0)"))
	assert.False(t, isTransparent("#000"))
	assert.False(t, isTransparent("bogus"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(3, 2, color.NRGBA{G: 255, A: 255})))
	return buf.Bytes()
}

func TestSourceLoaderDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
	img, err := (&SourceLoader{}).Load(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = (&SourceLoader{}).Load(context.Background(), "data:image/png;base64")
	assert.ErrorIs(t, err, ErrBadDataURI)

	_, err = (&SourceLoader{}).Load(context.Background(), "data:text/plain,hello%20world")
	assert.Error(t, err)
}

func TestDecodeDataURI(t *testing.T) {
	data, err := decodeDataURI("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	data, err = decodeDataURI("data:;base64,aGk")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestSourceLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0o644))

	for _, src := range []string{path, "file://" + path} {
		img, err := (&SourceLoader{}).Load(context.Background(), src)
		require.NoError(t, err, src)
		assert.Equal(t, 3, img.Bounds().Dx())
	}

	_, err := (&SourceLoader{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestSourceLoaderHTTP(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	loader := &SourceLoader{Client: srv.Client()}
	img, err := loader.Load(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dy())

	_, err = loader.Load(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}
