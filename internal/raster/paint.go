package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"infocanvas/internal/element"
	"infocanvas/internal/pathgen"
)

var ErrUnknownShape = errors.New("raster: unknown shape type")

const (
	// ListPadding is the left inset of text carrying a list style.
	ListPadding = 20
	// CaptionPadding keeps left or right aligned captions off the shape edge.
	CaptionPadding = 8

	bullet   = "• "
	numbered = "1. "
)

var (
	black   = color.NRGBA{A: 255}
	white   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	noColor = color.NRGBA{}
)

// painter draws single elements in document units. scale is the factor
// between document units and device pixels; gg does not scale line widths
// with the transform, so strokes multiply by it themselves.
type painter struct {
	scale  float64
	faces  *faceCache
	images map[string]*image.RGBA
}

// paint draws e onto target in its own save/restore scope. Elements with
// partial opacity are drawn onto a scratch layer first and composited.
func (p *painter) paint(target *gg.Context, e element.Element) error {
	b := e.Common()
	dc := target
	if b.Opacity < 1 {
		dc = gg.NewContext(target.Width(), target.Height())
		dc.Scale(p.scale, p.scale)
	}

	dc.Push()
	dc.ClearPath()
	cx, cy := b.Center()
	if b.Rotation != 0 {
		dc.RotateAbout(gg.Radians(b.Rotation), cx, cy)
	}

	var err error
	switch e := e.(type) {
	case *element.Text:
		p.text(dc, e)
	case *element.Shape:
		err = p.shape(dc, e)
	case *element.Image:
		sx, sy := 1.0, 1.0
		if e.FlipHorizontal {
			sx = -1
		}
		if e.FlipVertical {
			sy = -1
		}
		// flip applies to the image before the rotation does
		dc.ScaleAbout(sx, sy, cx, cy)
		p.image(dc, e)
	default:
		panic(fmt.Sprintf("raster: unexpected element %T", e))
	}
	dc.Pop()
	dc.ResetClip()
	dc.ClearPath()

	if err != nil {
		return err
	}
	if dc != target {
		composite(target, dc, b.Opacity)
	}
	return nil
}

func composite(dst, layer *gg.Context, opacity float64) {
	out, ok := dst.Image().(*image.RGBA)
	if !ok {
		return
	}
	mask := image.NewUniform(color.Alpha{A: channel(opacity*255, 255)})
	draw.DrawMask(out, out.Bounds(), layer.Image(), image.Point{}, mask, image.Point{}, draw.Over)
}

func (p *painter) text(dc *gg.Context, t *element.Text) {
	content := transformText(t.Content, t.TextTransform)
	prefix, pad := listPrefix(t.ListStyle)

	face := p.faces.face(t.FontFamily, t.EffectiveWeight(), t.Italic, t.FontSize)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	ascent := float64(face.Metrics().Ascent) / 64

	ax, x := anchor(t.Align, t.X, t.Width, pad)
	step := t.FontSize * t.LineHeight
	ink := paintColor(t.Color, black)
	for i, line := range strings.Split(content, "\n") {
		line = prefix + line
		top := t.Y + float64(i)*step
		dc.SetColor(ink)
		dc.DrawStringAnchored(line, x, top+ascent, ax, 0)

		if !t.Underline && !t.Strikethrough {
			continue
		}
		w, _ := dc.MeasureString(line)
		x0 := x - ax*w
		dc.SetLineWidth(max(1, t.FontSize/15) * p.scale)
		if t.Underline {
			dc.DrawLine(x0, top+t.FontSize, x0+w, top+t.FontSize)
			dc.Stroke()
		}
		if t.Strikethrough {
			dc.DrawLine(x0, top+t.FontSize/2, x0+w, top+t.FontSize/2)
			dc.Stroke()
		}
	}
}

// anchor returns the horizontal anchor fraction and x position for a line
// of text inside a box starting at x with width w.
func anchor(a element.Align, x, w, pad float64) (float64, float64) {
	switch a {
	case element.AlignCenter:
		return 0.5, x + w/2
	case element.AlignRight:
		return 1, x + w
	default:
		return 0, x + pad
	}
}

func listPrefix(ls element.ListStyle) (string, float64) {
	switch ls {
	case element.ListBullet:
		return bullet, ListPadding
	case element.ListNumbered:
		return numbered, ListPadding
	}
	return "", 0
}

func transformText(s string, tt element.TextTransform) string {
	switch tt {
	case element.TransformUppercase:
		return strings.ToUpper(s)
	case element.TransformLowercase:
		return strings.ToLower(s)
	case element.TransformCapitalize:
		// NoLower keeps the rest of each word as typed.
		return cases.Title(language.Und, cases.NoLower).String(s)
	}
	return s
}

func (p *painter) shape(dc *gg.Context, s *element.Shape) error {
	switch s.ShapeType {
	case element.Rectangle:
		roundedRect(dc, s.X, s.Y, s.Width, s.Height, s.CornerRadius)
	case element.Circle, element.Ellipse:
		dc.DrawEllipse(s.X+s.Width/2, s.Y+s.Height/2, s.Width/2, s.Height/2)
	default:
		d, ok := pathgen.For(s.ShapeType, s.Width, s.Height, s.CornerRadius)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownShape, s.ShapeType)
		}
		cmds, err := pathgen.Parse(d)
		if err != nil {
			return fmt.Errorf("shape %s: %w", s.ShapeType, err)
		}
		trace(dc, cmds, s.X, s.Y)
	}

	dc.SetColor(paintColor(s.Fill, noColor))
	dc.FillPreserve()
	if s.StrokeWidth > 0 && !isTransparent(s.Stroke) {
		dc.SetColor(paintColor(s.Stroke, black))
		dc.SetLineWidth(s.StrokeWidth * p.scale)
		dc.Stroke()
	} else {
		dc.ClearPath()
	}

	if s.Text != "" {
		p.caption(dc, s)
	}
	return nil
}

// roundedRect builds a rectangle whose corners are quadratic curves. The
// radius never exceeds half of either side.
func roundedRect(dc *gg.Context, x, y, w, h, r float64) {
	r = min(r, w/2, h/2)
	if r <= 0 {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.NewSubPath()
	dc.MoveTo(x+r, y)
	dc.LineTo(x+w-r, y)
	dc.QuadraticTo(x+w, y, x+w, y+r)
	dc.LineTo(x+w, y+h-r)
	dc.QuadraticTo(x+w, y+h, x+w-r, y+h)
	dc.LineTo(x+r, y+h)
	dc.QuadraticTo(x, y+h, x, y+h-r)
	dc.LineTo(x, y+r)
	dc.QuadraticTo(x, y, x+r, y)
	dc.ClosePath()
}

// trace replays parsed path commands offset to (x, y).
func trace(dc *gg.Context, cmds []pathgen.Command, x, y float64) {
	for _, c := range cmds {
		a := c.Args
		switch c.Op {
		case 'M':
			dc.MoveTo(x+a[0], y+a[1])
		case 'L':
			dc.LineTo(x+a[0], y+a[1])
		case 'Q':
			dc.QuadraticTo(x+a[0], y+a[1], x+a[2], y+a[3])
		case 'C':
			dc.CubicTo(x+a[0], y+a[1], x+a[2], y+a[3], x+a[4], y+a[5])
		case 'Z':
			dc.ClosePath()
		}
	}
}

// caption draws a shape's embedded text, vertically centered in its box.
func (p *painter) caption(dc *gg.Context, s *element.Shape) {
	st := s.CaptionStyle()
	face := p.faces.face(st.FontFamily, st.EffectiveWeight(), st.Italic, st.FontSize)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetColor(paintColor(st.Color, white))
	ascent := float64(face.Metrics().Ascent) / 64

	lines := strings.Split(s.Text, "\n")
	step := st.FontSize * element.DefaultLineHeight
	top := s.Y + (s.Height-float64(len(lines))*step)/2 + (step-st.FontSize)/2

	var ax, x float64
	switch st.Align {
	case element.AlignLeft:
		ax, x = 0, s.X+CaptionPadding
	case element.AlignRight:
		ax, x = 1, s.X+s.Width-CaptionPadding
	default:
		ax, x = 0.5, s.X+s.Width/2
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, top+float64(i)*step+ascent, ax, 0)
	}
}

func (p *painter) image(dc *gg.Context, e *element.Image) {
	src := p.images[e.Src]
	if src == nil {
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	img := applyOverlay(applyFilters(src, e.Filters), e.ColorOverlay)

	if e.CornerRadius > 0 {
		roundedRect(dc, e.X, e.Y, e.Width, e.Height, e.CornerRadius)
		dc.Clip()
	}
	dc.Translate(e.X, e.Y)
	dc.Scale(e.Width/float64(b.Dx()), e.Height/float64(b.Dy()))
	dc.DrawImage(img, 0, 0)
}
