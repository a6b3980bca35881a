package element

import (
	"github.com/google/uuid"
)

const (
	DefaultFontFamily = "Inter"
	DefaultFontSize   = 16
	DefaultTextColor  = "#000000"
	DefaultLineHeight = 1.2

	DefaultFill        = "#3B82F6"
	DefaultStroke      = "#1E40AF"
	DefaultStrokeWidth = 2
)

var shapeSizes = map[ShapeType][2]float64{
	Rectangle:    {150, 100},
	Circle:       {100, 100},
	Ellipse:      {100, 100},
	Triangle:     {100, 100},
	Star:         {100, 100},
	SpeechBubble: {150, 100},
	ArrowLeft:    {150, 80},
	ArrowRight:   {150, 80},
}

var shapeNames = map[ShapeType]string{
	Rectangle:    "Rectangle",
	Circle:       "Circle",
	Ellipse:      "Ellipse",
	Triangle:     "Triangle",
	Star:         "Star",
	SpeechBubble: "Speech Bubble",
	ArrowLeft:    "Left Arrow",
	ArrowRight:   "Right Arrow",
}

// NewID returns a fresh element id for the given variant. Ids are never reused.
func NewID(t Type) string {
	return string(t) + "-" + uuid.NewString()
}

// DefaultSize returns the size a freshly dropped shape of kind t gets.
func DefaultSize(t ShapeType) (float64, float64) {
	if sz, ok := shapeSizes[t]; ok {
		return sz[0], sz[1]
	}
	return 100, 100
}

func newBase(t Type, x, y, w, h float64, name string) Base {
	return Base{
		ID:      NewID(t),
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		Opacity: 1,
		Visible: true,
		Name:    name,
	}
}

// NewText creates a text element with the default 16px Inter, black,
// left-aligned style.
func NewText(x, y float64, content string) *Text {
	return &Text{
		Base:          newBase(TypeText, x, y, 200, 40, "Text"),
		Content:       content,
		FontFamily:    DefaultFontFamily,
		FontSize:      DefaultFontSize,
		FontWeight:    WeightNormal,
		Color:         DefaultTextColor,
		Align:         AlignLeft,
		LineHeight:    DefaultLineHeight,
		TextTransform: TransformNone,
		ListStyle:     ListNone,
	}
}

// NewShape creates a shape sized for its kind, filled blue with a darker stroke.
func NewShape(kind ShapeType, x, y float64) *Shape {
	w, h := DefaultSize(kind)
	name, ok := shapeNames[kind]
	if !ok {
		name = "Shape"
	}
	return &Shape{
		Base:        newBase(TypeShape, x, y, w, h, name),
		ShapeType:   kind,
		Fill:        DefaultFill,
		Stroke:      DefaultStroke,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// NewImage creates an image element with neutral filters and no overlay.
func NewImage(x, y float64, src string) *Image {
	return &Image{
		Base:    newBase(TypeImage, x, y, 300, 200, "Image"),
		Src:     src,
		Filters: Filters{Brightness: 100, Contrast: 100, Saturation: 100},
	}
}

func defaultCaptionStyle() TextStyle {
	return TextStyle{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		FontWeight: WeightNormal,
		Color:      "#FFFFFF",
		Align:      AlignCenter,
	}
}

// DefaultCaptionStyle is the style given to a new shape caption.
func DefaultCaptionStyle() *TextStyle {
	s := defaultCaptionStyle()
	return &s
}
