package raster

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"infocanvas/internal/logx"
)

// ParseColor reads a CSS color: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba(),
// a named color, or "transparent"/"none". ok is false when s is none of
// those.
func ParseColor(s string) (c color.NRGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if named, found := colornames.Map[s]; found {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true
	}
	return color.NRGBA{}, false
}

func parseHex(s string) (color.NRGBA, bool) {
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, false
	}
	hc, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := hc.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

// parseFunc handles rgb(r, g, b) and rgba(r, g, b, a), comma or space
// separated, with channels as 0-255 or percentages.
func parseFunc(s string) (color.NRGBA, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, false
	}
	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return color.NRGBA{}, false
	}

	var ch [4]float64
	ch[3] = 1
	for i, f := range fields {
		pct := strings.HasSuffix(f, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		switch {
		case i == 3 && pct:
			v /= 100
		case i == 3:
		case pct:
			v = v * 255 / 100
		}
		ch[i] = v
	}
	return color.NRGBA{
		R: channel(ch[0], 255),
		G: channel(ch[1], 255),
		B: channel(ch[2], 255),
		A: channel(ch[3]*255, 255),
	}, true
}

func channel(v, hi float64) uint8 {
	return uint8(min(max(v, 0), hi) + 0.5)
}

// paintColor is ParseColor with a fallback for unreadable values.
func paintColor(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	logx.Logger().Debug("unreadable color", "value", s)
	return fallback
}

func isTransparent(s string) bool {
	c, ok := ParseColor(s)
	return ok && c.A == 0
}
