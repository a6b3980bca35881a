package raster

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"infocanvas/internal/element"
	"infocanvas/internal/logx"
)

// Font families are mapped onto the bundled Go fonts: anything that reads
// as monospace gets Go Mono, everything else Go Regular, each with its
// bold and italic cuts.
type fontStyle struct {
	mono   bool
	bold   bool
	italic bool
}

var fontData = map[fontStyle][]byte{
	{}:                                     goregular.TTF,
	{bold: true}:                           gobold.TTF,
	{italic: true}:                         goitalic.TTF,
	{bold: true, italic: true}:             gobolditalic.TTF,
	{mono: true}:                           gomono.TTF,
	{mono: true, bold: true}:               gomonobold.TTF,
	{mono: true, italic: true}:             gomonoitalic.TTF,
	{mono: true, bold: true, italic: true}: gomonobolditalic.TTF,
}

var (
	parsedMu sync.Mutex
	parsed   = map[fontStyle]*truetype.Font{}
)

func parsedFont(st fontStyle) *truetype.Font {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	return parseLocked(st)
}

func parseLocked(st fontStyle) *truetype.Font {
	if f, ok := parsed[st]; ok {
		return f
	}
	f, err := truetype.Parse(fontData[st])
	if err != nil {
		logx.Logger().Error("failed to parse font", "style", st, "err", err)
		if st == (fontStyle{}) {
			return nil
		}
		return parseLocked(fontStyle{})
	}
	parsed[st] = f
	return f
}

var monoHints = []string{"mono", "courier", "consolas", "menlo", "code"}

func styleFor(family string, weight element.FontWeight, italic bool) fontStyle {
	fam := strings.ToLower(family)
	mono := false
	for _, h := range monoHints {
		if strings.Contains(fam, h) {
			mono = true
			break
		}
	}
	return fontStyle{mono: mono, bold: weight >= 600, italic: italic}
}

type faceKey struct {
	style fontStyle
	size  float64
}

// faceCache holds the faces used by one render. truetype faces keep a
// glyph cache and are not safe for concurrent use, so each render builds
// its own.
type faceCache struct {
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: map[faceKey]font.Face{}}
}

func (fc *faceCache) face(family string, weight element.FontWeight, italic bool, size float64) font.Face {
	key := faceKey{style: styleFor(family, weight, italic), size: size}
	if f, ok := fc.faces[key]; ok {
		return f
	}
	ttf := parsedFont(key.style)
	if ttf == nil {
		return nil
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	fc.faces[key] = f
	return f
}

func (fc *faceCache) close() {
	for _, f := range fc.faces {
		f.Close()
	}
}
