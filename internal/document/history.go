package document

import (
	"infocanvas/internal/element"
)

// DefaultHistoryLimit caps the undo stack.
const DefaultHistoryLimit = 50

// History is a snapshot-based undo/redo stack. Every entry is a decoupled
// copy of the whole element array.
type History struct {
	past   [][]element.Element
	future [][]element.Element
	limit  int
}

func newHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// record pushes the pre-mutation state and drops the redo branch.
func (h *History) record(before []element.Element) {
	h.past = append(h.past, element.CloneAll(before))
	if over := len(h.past) - h.limit; over > 0 {
		h.past = append(h.past[:0:0], h.past[over:]...)
	}
	h.future = nil
}

func (h *History) undo(current []element.Element) ([]element.Element, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]
	h.future = append([][]element.Element{element.CloneAll(current)}, h.future...)
	return element.CloneAll(prev), true
}

func (h *History) redo(current []element.Element) ([]element.Element, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, element.CloneAll(current))
	if over := len(h.past) - h.limit; over > 0 {
		h.past = append(h.past[:0:0], h.past[over:]...)
	}
	return element.CloneAll(next), true
}

func (h *History) reset() {
	h.past = nil
	h.future = nil
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Past returns copies of the undo entries, oldest first.
func (h *History) Past() [][]element.Element { return cloneStack(h.past) }

// Future returns copies of the redo entries, next-to-redo first.
func (h *History) Future() [][]element.Element { return cloneStack(h.future) }

func (h *History) Limit() int { return h.limit }

// Depth reports how many undo and redo steps are available.
func (h *History) Depth() (undo, redo int) { return len(h.past), len(h.future) }

func cloneStack(s [][]element.Element) [][]element.Element {
	out := make([][]element.Element, len(s))
	for i, snap := range s {
		out[i] = element.CloneAll(snap)
	}
	return out
}
