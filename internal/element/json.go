package element

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownType = errors.New("element: unknown element type")

// FontWeight is a CSS numeric weight. It decodes from numbers and from the
// keywords "normal" and "bold".
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

func (w *FontWeight) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "normal", "regular":
			*w = WeightNormal
		case "bold":
			*w = WeightBold
		case "lighter":
			*w = 300
		case "bolder":
			*w = 800
		default:
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("element: bad font weight %q", s)
			}
			*w = FontWeight(n)
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = FontWeight(n)
	return nil
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return json.Marshal(struct {
		Type Type `json:"type"`
		*plain
	}{TypeText, (*plain)(t)})
}

func (s *Shape) MarshalJSON() ([]byte, error) {
	type plain Shape
	return json.Marshal(struct {
		Type Type `json:"type"`
		*plain
	}{TypeShape, (*plain)(s)})
}

func (i *Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return json.Marshal(struct {
		Type Type `json:"type"`
		*plain
	}{TypeImage, (*plain)(i)})
}

func (s *TextStyle) UnmarshalJSON(data []byte) error {
	type plain TextStyle
	*s = defaultCaptionStyle()
	return json.Unmarshal(data, (*plain)(s))
}

// Decode reads one tagged element. Fields missing from data keep the
// factory defaults, so a decoded element is always complete; a missing id
// is replaced by a fresh one.
func Decode(data []byte) (Element, error) {
	var head struct {
		Type      Type      `json:"type"`
		ShapeType ShapeType `json:"shapeType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var e Element
	var err error
	switch head.Type {
	case TypeText:
		type plain Text
		t := NewText(0, 0, "")
		err = json.Unmarshal(data, (*plain)(t))
		e = t
	case TypeShape:
		type plain Shape
		s := NewShape(head.ShapeType, 0, 0)
		err = json.Unmarshal(data, (*plain)(s))
		e = s
	case TypeImage:
		type plain Image
		i := NewImage(0, 0, "")
		err = json.Unmarshal(data, (*plain)(i))
		e = i
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, head.Type)
	}
	if err != nil {
		return nil, err
	}
	if e.Common().ID == "" {
		e.Common().ID = NewID(e.Type())
	}
	Normalize(e)
	return e, nil
}

// List is an element array that decodes its tagged members.
type List []Element

func (l *List) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return errors.New("element: list is not an array")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for i, r := range raw {
		e, err := Decode(r)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, e)
	}
	*l = out
	return nil
}
