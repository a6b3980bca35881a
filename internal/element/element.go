// Package element defines the visual elements of a canvas document.
//
// An Element is exactly one of *Text, *Shape or *Image. Every consumer
// switches over those three types; the interface is sealed so no other
// implementation can appear.
package element

type Type string

const (
	TypeText  Type = "text"
	TypeShape Type = "shape"
	TypeImage Type = "image"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type TextTransform string

const (
	TransformNone       TextTransform = "none"
	TransformUppercase  TextTransform = "uppercase"
	TransformLowercase  TextTransform = "lowercase"
	TransformCapitalize TextTransform = "capitalize"
)

type ListStyle string

const (
	ListNone     ListStyle = "none"
	ListBullet   ListStyle = "bullet"
	ListNumbered ListStyle = "numbered"
)

type ShapeType string

const (
	Rectangle    ShapeType = "rectangle"
	Circle       ShapeType = "circle"
	Ellipse      ShapeType = "ellipse"
	Triangle     ShapeType = "triangle"
	Star         ShapeType = "star"
	SpeechBubble ShapeType = "speechBubble"
	ArrowLeft    ShapeType = "arrowLeft"
	ArrowRight   ShapeType = "arrowRight"
)

// ShapeTypes lists every shape in palette order.
var ShapeTypes = []ShapeType{
	Rectangle, Circle, Ellipse, Triangle, Star, SpeechBubble, ArrowLeft, ArrowRight,
}

// Base holds the attributes shared by all variants.
type Base struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
	Locked   bool    `json:"locked"`
	Visible  bool    `json:"visible"`
	ZIndex   int     `json:"zIndex"`
	Name     string  `json:"name"`
}

// Common returns the shared attributes of the element embedding b.
func (b *Base) Common() *Base { return b }

// Center is the rotation origin of the element.
func (b *Base) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

type Element interface {
	Type() Type
	Common() *Base
	Clone() Element
	sealed()
}

type Text struct {
	Base
	Content       string        `json:"content"`
	FontFamily    string        `json:"fontFamily"`
	FontSize      float64       `json:"fontSize"`
	FontWeight    FontWeight    `json:"fontWeight"`
	Bold          bool          `json:"bold"`
	Italic        bool          `json:"italic"`
	Underline     bool          `json:"underline"`
	Strikethrough bool          `json:"strikethrough"`
	Color         string        `json:"color"`
	Align         Align         `json:"align"`
	LineHeight    float64       `json:"lineHeight"`
	TextTransform TextTransform `json:"textTransform"`
	ListStyle     ListStyle     `json:"listStyle"`
}

// TextStyle styles the caption embedded in a shape.
type TextStyle struct {
	FontFamily string     `json:"fontFamily"`
	FontSize   float64    `json:"fontSize"`
	FontWeight FontWeight `json:"fontWeight"`
	Bold       bool       `json:"bold"`
	Italic     bool       `json:"italic"`
	Color      string     `json:"color"`
	Align      Align      `json:"align"`
}

type Shape struct {
	Base
	ShapeType    ShapeType  `json:"shapeType"`
	Fill         string     `json:"fill"`
	Stroke       string     `json:"stroke"`
	StrokeWidth  float64    `json:"strokeWidth"`
	CornerRadius float64    `json:"cornerRadius"`
	Text         string     `json:"text,omitempty"`
	TextStyle    *TextStyle `json:"textStyle,omitempty"`
}

// Overlay tints an image with a multiply blend.
type Overlay struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Filters are percentages where 100 leaves the image unchanged.
type Filters struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// IsNeutral reports whether applying f would leave pixels unchanged.
func (f Filters) IsNeutral() bool {
	return f.Brightness == 100 && f.Contrast == 100 && f.Saturation == 100
}

type Image struct {
	Base
	Src            string   `json:"src"`
	CornerRadius   float64  `json:"cornerRadius"`
	FlipHorizontal bool     `json:"flipHorizontal"`
	FlipVertical   bool     `json:"flipVertical"`
	ColorOverlay   *Overlay `json:"colorOverlay"`
	Filters        Filters  `json:"filters"`
}

func (*Text) Type() Type  { return TypeText }
func (*Shape) Type() Type { return TypeShape }
func (*Image) Type() Type { return TypeImage }

func (*Text) sealed()  {}
func (*Shape) sealed() {}
func (*Image) sealed() {}

// EffectiveWeight folds the bold flag into the numeric weight.
func (t *Text) EffectiveWeight() FontWeight {
	if t.Bold && t.FontWeight < WeightBold {
		return WeightBold
	}
	return t.FontWeight
}

// EffectiveWeight folds the bold flag into the numeric weight.
func (s *TextStyle) EffectiveWeight() FontWeight {
	if s.Bold && s.FontWeight < WeightBold {
		return WeightBold
	}
	return s.FontWeight
}

// CaptionStyle returns the caption style, falling back to the default
// caption look when the shape carries none.
func (s *Shape) CaptionStyle() TextStyle {
	if s.TextStyle != nil {
		return *s.TextStyle
	}
	return defaultCaptionStyle()
}
