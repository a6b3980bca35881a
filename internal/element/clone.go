package element

import (
	"github.com/jinzhu/copier"
)

func deepCopy[T any](src *T) *T {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		*dst = *src
	}
	return dst
}

func (t *Text) Clone() Element  { return deepCopy(t) }
func (s *Shape) Clone() Element { return deepCopy(s) }
func (i *Image) Clone() Element { return deepCopy(i) }

// CloneAll returns a decoupled copy of elems.
func CloneAll(elems []Element) []Element {
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

// Duplicate clones e under a new id, shifted by (dx, dy) and relabelled.
// The caller assigns the z-index.
func Duplicate(e Element, dx, dy float64) Element {
	c := e.Clone()
	b := c.Common()
	b.ID = NewID(c.Type())
	b.X += dx
	b.Y += dy
	b.Name = CopyName(b.Name)
	return c
}

// CopyName is the label given to a duplicate.
func CopyName(name string) string {
	if name == "" {
		return "Copy"
	}
	return name + " (copy)"
}
