// Package document owns the mutable canvas document: the element list,
// selection, viewport, clipboard and undo/redo history.
//
// A Store is one editing session. It is not safe for concurrent use; the
// goroutine driving the UI owns it and hands decoupled Snapshots to
// anything running elsewhere (export, persistence).
package document

import (
	"math"
	"reflect"
	"slices"
	"sort"
	"time"

	"infocanvas/internal/element"
	"infocanvas/internal/logx"
)

const (
	MinZoom = 0.1
	MaxZoom = 4.0

	zoomStep = 1.2

	// PasteOffset shifts duplicated and pasted elements off their source.
	PasteOffset = 20

	DefaultCanvasWidth  = 1200
	DefaultCanvasHeight = 800
	MaxCanvasSize       = 10000
	DefaultBackground   = "#FFFFFF"
)

type Store struct {
	elements  []element.Element
	selected  []string
	clipboard []element.Element

	canvasWidth  float64
	canvasHeight float64
	background   string
	zoom         float64
	panX, panY   float64

	history   *History
	now       func() time.Time
	listeners map[int]func()
	nextSub   int
}

type Option func(*Store)

func WithCanvasSize(w, h float64) Option {
	return func(s *Store) {
		s.canvasWidth = ClampCanvasSize(w)
		s.canvasHeight = ClampCanvasSize(h)
	}
}

// ClampCanvasSize bounds one canvas dimension to [1, MaxCanvasSize].
// NaN counts as the minimum.
func ClampCanvasSize(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return min(max(v, 1), MaxCanvasSize)
}

func WithBackground(color string) Option {
	return func(s *Store) { s.background = color }
}

func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = newHistory(n) }
}

// WithClock sets the time source for capture timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		canvasWidth:  DefaultCanvasWidth,
		canvasHeight: DefaultCanvasHeight,
		background:   DefaultBackground,
		zoom:         1,
		history:      newHistory(DefaultHistoryLimit),
		now:          time.Now,
		listeners:    make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to run after every state change. The returned
// func removes it.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// mutate records the pre-mutation elements, applies fn and keeps the
// selection consistent with what survives.
func (s *Store) mutate(op string, fn func()) {
	s.history.record(s.elements)
	fn()
	s.pruneSelection()
	logx.Logger().Debug("document mutation", "op", op, "elements", len(s.elements))
	s.notify()
}

func (s *Store) index(id string) int {
	for i, e := range s.elements {
		if e.Common().ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) get(id string) element.Element {
	if i := s.index(id); i >= 0 {
		return s.elements[i]
	}
	return nil
}

func (s *Store) pruneSelection() {
	s.selected = slices.DeleteFunc(s.selected, func(id string) bool {
		return s.index(id) < 0
	})
}

func (s *Store) maxZ() int {
	z := 0
	for i, e := range s.elements {
		if i == 0 || e.Common().ZIndex > z {
			z = e.Common().ZIndex
		}
	}
	return z
}

func (s *Store) minZ() int {
	z := 0
	for i, e := range s.elements {
		if i == 0 || e.Common().ZIndex < z {
			z = e.Common().ZIndex
		}
	}
	return z
}

// Elements returns a decoupled copy of the element list in storage order.
func (s *Store) Elements() []element.Element {
	return element.CloneAll(s.elements)
}

// SortedElements returns a decoupled copy in paint order.
func (s *Store) SortedElements() []element.Element {
	out := s.Elements()
	SortByZ(out)
	return out
}

// SortByZ orders elems by ascending zIndex. Ties keep their relative order.
func SortByZ(elems []element.Element) {
	sort.SliceStable(elems, func(i, j int) bool {
		return elems[i].Common().ZIndex < elems[j].Common().ZIndex
	})
}

func (s *Store) Len() int { return len(s.elements) }

// ElementByID returns a copy of the element with the given id.
func (s *Store) ElementByID(id string) (element.Element, bool) {
	e := s.get(id)
	if e == nil {
		return nil, false
	}
	return e.Clone(), true
}

// AddElement appends e on top of the current z-order and returns its id.
// The store keeps its own copy; an empty or already used id is replaced.
func (s *Store) AddElement(e element.Element) string {
	e = e.Clone()
	s.mutate("add", func() { s.appendElement(e) })
	return e.Common().ID
}

func (s *Store) appendElement(e element.Element) {
	b := e.Common()
	if b.ID == "" || s.index(b.ID) >= 0 {
		b.ID = element.NewID(e.Type())
	}
	b.ZIndex = max(s.maxZ(), 0) + 1
	element.Normalize(e)
	s.elements = append(s.elements, e)
}

// UpdateElement merges p into the element with the given id. Unknown ids
// and patches that change nothing are ignored and leave no history entry.
func (s *Store) UpdateElement(id string, p element.Patch) {
	i := s.index(id)
	if i < 0 {
		return
	}
	next := s.elements[i].Clone()
	p.Apply(next)
	if reflect.DeepEqual(next, s.elements[i].Clone()) {
		return
	}
	s.mutate("update", func() { s.elements[i] = next })
}

func (s *Store) DeleteElement(id string) {
	s.DeleteElements(id)
}

// DeleteElements removes every listed element and drops it from the
// selection. Unknown ids are ignored.
func (s *Store) DeleteElements(ids ...string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.index(id) >= 0 {
			doomed[id] = true
		}
	}
	if len(doomed) == 0 {
		return
	}
	s.mutate("delete", func() {
		s.elements = slices.DeleteFunc(s.elements, func(e element.Element) bool {
			return doomed[e.Common().ID]
		})
	})
}

func (s *Store) DeleteSelected() {
	s.DeleteElements(s.selected...)
}

// DuplicateElement clones the element under a new id, offset by
// PasteOffset on both axes, and selects the clone alone.
func (s *Store) DuplicateElement(id string) (string, bool) {
	e := s.get(id)
	if e == nil {
		return "", false
	}
	dup := element.Duplicate(e, PasteOffset, PasteOffset)
	newID := s.AddElement(dup)
	s.selected = []string{newID}
	s.notify()
	return newID, true
}

// SelectElement selects id alone, or toggles it within the current
// selection when add is set. Missing and locked elements are ignored.
func (s *Store) SelectElement(id string, add bool) {
	e := s.get(id)
	if e == nil || e.Common().Locked {
		return
	}
	switch {
	case !add:
		s.selected = []string{id}
	case slices.Contains(s.selected, id):
		s.selected = slices.DeleteFunc(s.selected, func(sel string) bool { return sel == id })
	default:
		s.selected = append(s.selected, id)
	}
	s.notify()
}

// SelectAll selects every unlocked element in paint order.
func (s *Store) SelectAll() {
	s.selected = s.selected[:0]
	for _, e := range s.SortedElements() {
		if !e.Common().Locked {
			s.selected = append(s.selected, e.Common().ID)
		}
	}
	s.notify()
}

func (s *Store) ClearSelection() {
	s.selected = nil
	s.notify()
}

// SelectedIDs returns the selection in the order it was made.
func (s *Store) SelectedIDs() []string {
	return slices.Clone(s.selected)
}

func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

func (s *Store) SelectedElements() []element.Element {
	out := make([]element.Element, 0, len(s.selected))
	for _, id := range s.selected {
		if e := s.get(id); e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

// BringToFront gives id a z-index above every other element, itself included.
func (s *Store) BringToFront(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("bringToFront", func() { e.Common().ZIndex = s.maxZ() + 1 })
}

// SendToBack gives id a z-index below every other element, itself included.
func (s *Store) SendToBack(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("sendToBack", func() { e.Common().ZIndex = s.minZ() - 1 })
}

// BringForward raises id by one. Collisions with a neighbour are left as is.
func (s *Store) BringForward(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("bringForward", func() { e.Common().ZIndex++ })
}

// SendBackward lowers id by one. Collisions with a neighbour are left as is.
func (s *Store) SendBackward(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("sendBackward", func() { e.Common().ZIndex-- })
}

func (s *Store) ToggleLock(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("toggleLock", func() {
		b := e.Common()
		b.Locked = !b.Locked
		if b.Locked {
			s.selected = slices.DeleteFunc(s.selected, func(sel string) bool { return sel == id })
		}
	})
}

func (s *Store) ToggleVisibility(id string) {
	e := s.get(id)
	if e == nil {
		return
	}
	s.mutate("toggleVisibility", func() {
		b := e.Common()
		b.Visible = !b.Visible
	})
}

// CopyToClipboard stores value copies of the selection and returns how many
// were copied. With nothing selected the clipboard is left alone.
func (s *Store) CopyToClipboard() int {
	selected := s.SelectedElements()
	if len(selected) == 0 {
		return 0
	}
	s.clipboard = selected
	return len(selected)
}

// PasteFromClipboard inserts fresh copies of the clipboard, offset by
// PasteOffset, and selects them. It returns the new ids.
func (s *Store) PasteFromClipboard() []string {
	if len(s.clipboard) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.clipboard))
	s.mutate("paste", func() {
		for _, snap := range s.clipboard {
			c := snap.Clone()
			b := c.Common()
			b.ID = element.NewID(c.Type())
			b.X += PasteOffset
			b.Y += PasteOffset
			s.appendElement(c)
			ids = append(ids, b.ID)
		}
	})
	s.selected = ids
	s.notify()
	return slices.Clone(ids)
}

func (s *Store) ClipboardLen() int { return len(s.clipboard) }

// ClearCanvas removes every element, the selection and the clipboard. The
// emptying is undoable.
func (s *Store) ClearCanvas() {
	s.mutate("clear", func() {
		s.elements = nil
		s.selected = nil
		s.clipboard = nil
	})
}

// Undo restores the elements as they were before the last mutation.
// It reports false when there is nothing to undo.
func (s *Store) Undo() bool {
	prev, ok := s.history.undo(s.elements)
	if !ok {
		return false
	}
	s.elements = prev
	s.pruneSelection()
	logx.Logger().Debug("document undo", "past", len(s.history.past), "future", len(s.history.future))
	s.notify()
	return true
}

// Redo reapplies the last undone mutation.
func (s *Store) Redo() bool {
	next, ok := s.history.redo(s.elements)
	if !ok {
		return false
	}
	s.elements = next
	s.pruneSelection()
	logx.Logger().Debug("document redo", "past", len(s.history.past), "future", len(s.history.future))
	s.notify()
	return true
}

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// History exposes the undo/redo stacks for inspection.
func (s *Store) History() *History { return s.history }

func (s *Store) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (s *Store) SetZoom(z float64) {
	s.zoom = clampZoom(z)
	s.notify()
}

func (s *Store) ZoomIn()  { s.SetZoom(s.zoom * zoomStep) }
func (s *Store) ZoomOut() { s.SetZoom(s.zoom / zoomStep) }

func clampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}

func (s *Store) Pan() (float64, float64) { return s.panX, s.panY }

func (s *Store) SetPan(x, y float64) {
	s.panX, s.panY = x, y
	s.notify()
}

func (s *Store) BackgroundColor() string { return s.background }

func (s *Store) SetBackgroundColor(c string) {
	s.background = c
	s.notify()
}

func (s *Store) CanvasSize() (float64, float64) { return s.canvasWidth, s.canvasHeight }

func (s *Store) SetCanvasSize(w, h float64) {
	s.canvasWidth = ClampCanvasSize(w)
	s.canvasHeight = ClampCanvasSize(h)
	s.notify()
}
