// Package pathgen computes SVG path data for the non-primitive shapes.
//
// Every function maps a bounding box with its origin at (0, 0) to a path
// string. The same string drives the interactive preview and the raster
// export, so the geometry lives only here.
package pathgen

import (
	"math"
	"strconv"
	"strings"

	"infocanvas/internal/element"
)

const (
	TailWidth  = 20
	TailHeight = 15
	// TailOffset places the speech bubble tail as a fraction of the width.
	TailOffset = 0.2

	StarPoints     = 5
	StarInnerRatio = 0.4

	DefaultBubbleRadius = 10
)

type builder struct {
	sb strings.Builder
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (b *builder) cmd(op byte, args ...float64) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteByte(op)
	for _, a := range args {
		b.sb.WriteByte(' ')
		b.sb.WriteString(num(a))
	}
}

func (b *builder) String() string { return b.sb.String() }

// Triangle is isosceles with its apex centred on the top edge.
func Triangle(w, h float64) string {
	var b builder
	b.cmd('M', w/2, 0)
	b.cmd('L', w, h)
	b.cmd('L', 0, h)
	b.cmd('Z')
	return b.String()
}

// Star is a five point star inscribed in the box, first point at the top.
func Star(w, h float64) string {
	cx, cy := w/2, h/2
	outer := math.Min(w, h) / 2
	inner := outer * StarInnerRatio

	var b builder
	for i := 0; i < StarPoints*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := (-90 + float64(i)*36) * math.Pi / 180
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b.cmd('M', x, y)
		} else {
			b.cmd('L', x, y)
		}
	}
	b.cmd('Z')
	return b.String()
}

// SpeechBubble is a rounded rectangle with a tail below it. The tail keeps
// a fixed size; the body fills the box above the tail.
func SpeechBubble(w, h, radius float64) string {
	body := math.Max(h-TailHeight, 0)
	r := math.Max(0, math.Min(radius, math.Min(w, body)/2))
	tx := w * TailOffset

	var b builder
	b.cmd('M', r, 0)
	b.cmd('L', w-r, 0)
	b.cmd('Q', w, 0, w, r)
	b.cmd('L', w, body-r)
	b.cmd('Q', w, body, w-r, body)
	b.cmd('L', tx+TailWidth, body)
	b.cmd('L', tx, body+TailHeight)
	b.cmd('L', tx, body)
	b.cmd('L', r, body)
	b.cmd('Q', 0, body, 0, body-r)
	b.cmd('L', 0, r)
	b.cmd('Q', 0, 0, r, 0)
	b.cmd('Z')
	return b.String()
}

func arrowHead(w, h float64) float64 {
	return math.Min(w*0.3, h)
}

// ArrowRight is a shaft half as tall as the box ending in a head on the right.
func ArrowRight(w, h float64) string {
	head := arrowHead(w, h)
	top, bottom := h/4, h*3/4

	var b builder
	b.cmd('M', 0, top)
	b.cmd('L', w-head, top)
	b.cmd('L', w-head, 0)
	b.cmd('L', w, h/2)
	b.cmd('L', w-head, h)
	b.cmd('L', w-head, bottom)
	b.cmd('L', 0, bottom)
	b.cmd('Z')
	return b.String()
}

// ArrowLeft mirrors ArrowRight.
func ArrowLeft(w, h float64) string {
	head := arrowHead(w, h)
	top, bottom := h/4, h*3/4

	var b builder
	b.cmd('M', w, top)
	b.cmd('L', head, top)
	b.cmd('L', head, 0)
	b.cmd('L', 0, h/2)
	b.cmd('L', head, h)
	b.cmd('L', head, bottom)
	b.cmd('L', w, bottom)
	b.cmd('Z')
	return b.String()
}

// For returns the path of a complex shape. Rectangles, circles and
// ellipses are drawn with primitives and report false.
func For(kind element.ShapeType, w, h, cornerRadius float64) (string, bool) {
	switch kind {
	case element.Triangle:
		return Triangle(w, h), true
	case element.Star:
		return Star(w, h), true
	case element.SpeechBubble:
		if cornerRadius <= 0 {
			cornerRadius = DefaultBubbleRadius
		}
		return SpeechBubble(w, h, cornerRadius), true
	case element.ArrowLeft:
		return ArrowLeft(w, h), true
	case element.ArrowRight:
		return ArrowRight(w, h), true
	}
	return "", false
}
