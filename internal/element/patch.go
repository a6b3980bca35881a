package element

import (
	"fmt"
)

// Patch is a partial update scoped to one variant's field set.
type Patch interface {
	Apply(e Element)
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }

// BasePatch updates the attributes every variant shares.
type BasePatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Locked   *bool    `json:"locked,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
	Name     *string  `json:"name,omitempty"`
}

type TextPatch struct {
	BasePatch
	Content       *string        `json:"content,omitempty"`
	FontFamily    *string        `json:"fontFamily,omitempty"`
	FontSize      *float64       `json:"fontSize,omitempty"`
	FontWeight    *FontWeight    `json:"fontWeight,omitempty"`
	Bold          *bool          `json:"bold,omitempty"`
	Italic        *bool          `json:"italic,omitempty"`
	Underline     *bool          `json:"underline,omitempty"`
	Strikethrough *bool          `json:"strikethrough,omitempty"`
	Color         *string        `json:"color,omitempty"`
	Align         *Align         `json:"align,omitempty"`
	LineHeight    *float64       `json:"lineHeight,omitempty"`
	TextTransform *TextTransform `json:"textTransform,omitempty"`
	ListStyle     *ListStyle     `json:"listStyle,omitempty"`
}

type ShapePatch struct {
	BasePatch
	ShapeType    *ShapeType `json:"shapeType,omitempty"`
	Fill         *string    `json:"fill,omitempty"`
	Stroke       *string    `json:"stroke,omitempty"`
	StrokeWidth  *float64   `json:"strokeWidth,omitempty"`
	CornerRadius *float64   `json:"cornerRadius,omitempty"`
	Text         *string    `json:"text,omitempty"`
	TextStyle    *TextStyle `json:"textStyle,omitempty"`
}

// ImagePatch updates an image. ClearOverlay removes the overlay; it wins
// over ColorOverlay when both are set.
type ImagePatch struct {
	BasePatch
	Src            *string  `json:"src,omitempty"`
	CornerRadius   *float64 `json:"cornerRadius,omitempty"`
	FlipHorizontal *bool    `json:"flipHorizontal,omitempty"`
	FlipVertical   *bool    `json:"flipVertical,omitempty"`
	ColorOverlay   *Overlay `json:"colorOverlay,omitempty"`
	ClearOverlay   bool     `json:"clearOverlay,omitempty"`
	Brightness     *float64 `json:"brightness,omitempty"`
	Contrast       *float64 `json:"contrast,omitempty"`
	Saturation     *float64 `json:"saturation,omitempty"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Apply merges the shared fields into any variant.
func (p BasePatch) Apply(e Element) {
	b := e.Common()
	set(&b.X, p.X)
	set(&b.Y, p.Y)
	set(&b.Width, p.Width)
	set(&b.Height, p.Height)
	set(&b.Rotation, p.Rotation)
	set(&b.Opacity, p.Opacity)
	set(&b.Locked, p.Locked)
	set(&b.Visible, p.Visible)
	set(&b.ZIndex, p.ZIndex)
	set(&b.Name, p.Name)
	Normalize(e)
}

// Apply merges the shared fields, and the text fields only when e is a *Text.
func (p TextPatch) Apply(e Element) {
	if t, ok := e.(*Text); ok {
		set(&t.Content, p.Content)
		set(&t.FontFamily, p.FontFamily)
		set(&t.FontSize, p.FontSize)
		set(&t.FontWeight, p.FontWeight)
		set(&t.Bold, p.Bold)
		set(&t.Italic, p.Italic)
		set(&t.Underline, p.Underline)
		set(&t.Strikethrough, p.Strikethrough)
		set(&t.Color, p.Color)
		set(&t.Align, p.Align)
		set(&t.LineHeight, p.LineHeight)
		set(&t.TextTransform, p.TextTransform)
		set(&t.ListStyle, p.ListStyle)
	}
	p.BasePatch.Apply(e)
}

// Apply merges the shared fields, and the shape fields only when e is a *Shape.
func (p ShapePatch) Apply(e Element) {
	if s, ok := e.(*Shape); ok {
		set(&s.ShapeType, p.ShapeType)
		set(&s.Fill, p.Fill)
		set(&s.Stroke, p.Stroke)
		set(&s.StrokeWidth, p.StrokeWidth)
		set(&s.CornerRadius, p.CornerRadius)
		set(&s.Text, p.Text)
		if p.TextStyle != nil {
			style := *p.TextStyle
			s.TextStyle = &style
		}
	}
	p.BasePatch.Apply(e)
}

// Apply merges the shared fields, and the image fields only when e is an *Image.
func (p ImagePatch) Apply(e Element) {
	if img, ok := e.(*Image); ok {
		set(&img.Src, p.Src)
		set(&img.CornerRadius, p.CornerRadius)
		set(&img.FlipHorizontal, p.FlipHorizontal)
		set(&img.FlipVertical, p.FlipVertical)
		switch {
		case p.ClearOverlay:
			img.ColorOverlay = nil
		case p.ColorOverlay != nil:
			o := *p.ColorOverlay
			img.ColorOverlay = &o
		}
		set(&img.Filters.Brightness, p.Brightness)
		set(&img.Filters.Contrast, p.Contrast)
		set(&img.Filters.Saturation, p.Saturation)
	}
	p.BasePatch.Apply(e)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize clamps every numeric field of e into its valid range.
func Normalize(e Element) {
	b := e.Common()
	b.Opacity = clamp(b.Opacity, 0, 1)
	b.Width = max(b.Width, 1)
	b.Height = max(b.Height, 1)

	switch e := e.(type) {
	case *Text:
		e.FontSize = clamp(e.FontSize, 1, 500)
		e.LineHeight = clamp(e.LineHeight, 0.1, 10)
		e.FontWeight = FontWeight(clamp(float64(e.FontWeight), 100, 900))
	case *Shape:
		e.StrokeWidth = clamp(e.StrokeWidth, 0, 100)
		e.CornerRadius = max(e.CornerRadius, 0)
		if e.TextStyle != nil {
			e.TextStyle.FontSize = clamp(e.TextStyle.FontSize, 1, 500)
		}
	case *Image:
		e.CornerRadius = max(e.CornerRadius, 0)
		e.Filters.Brightness = clamp(e.Filters.Brightness, 0, 200)
		e.Filters.Contrast = clamp(e.Filters.Contrast, 0, 200)
		e.Filters.Saturation = clamp(e.Filters.Saturation, 0, 200)
		if e.ColorOverlay != nil {
			e.ColorOverlay.Opacity = clamp(e.ColorOverlay.Opacity, 0, 1)
		}
	default:
		panic(fmt.Sprintf("element: unhandled variant %T", e))
	}
}
