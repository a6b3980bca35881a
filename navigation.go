package main

import (
	"slices"

	"infocanvas/internal/element"
)

// layers lists elements topmost first, the order the side pane shows them.
func (m *model) layers() []element.Element {
	elems := m.store.SortedElements()
	slices.Reverse(elems)
	return elems
}

// current is the element under the list cursor.
func (m *model) current() (element.Element, bool) {
	elems := m.layers()
	if m.cursor < 0 || m.cursor >= len(elems) {
		return nil, false
	}
	return elems[m.cursor], true
}

func (m *model) currentID() string {
	if e, ok := m.current(); ok {
		return e.Common().ID
	}
	return ""
}

// targets are the elements an edit key applies to: the selection when
// there is one, otherwise the element under the cursor.
func (m *model) targets() []string {
	if ids := m.store.SelectedIDs(); len(ids) > 0 {
		return ids
	}
	if id := m.currentID(); id != "" {
		return []string{id}
	}
	return nil
}

// focus moves the cursor onto id, wherever it now sits in the stack.
func (m *model) focus(id string) {
	for i, e := range m.layers() {
		if e.Common().ID == id {
			m.cursor = i
			return
		}
	}
	m.ensureCursorInBounds()
}

func (m *model) ensureCursorInBounds() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) handleNavigation(key string) {
	if m.panMode {
		m.handlePan(key)
		return
	}
	switch key {
	case "k", "up":
		m.cursor--
	case "j", "down":
		m.cursor++
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.store.Len() - 1
	}
	m.ensureCursorInBounds()
}

// handlePan scrolls the preview. The step is in screen terms, so it covers
// less of the document as the zoom grows.
func (m *model) handlePan(key string) {
	step := panStep / m.store.Zoom()
	x, y := m.store.Pan()
	switch key {
	case "h", "left":
		x -= step
	case "l", "right":
		x += step
	case "k", "up":
		y -= step
	case "j", "down":
		y += step
	}
	m.store.SetPan(x, y)
}

// nudge moves the targeted elements. Locked elements stay put.
func (m *model) nudge(key string) {
	var dx, dy float64
	switch key {
	case "H", "shift+left":
		dx = -nudgeStep
	case "L", "shift+right":
		dx = nudgeStep
	case "K", "shift+up":
		dy = -nudgeStep
	case "J", "shift+down":
		dy = nudgeStep
	}
	moved := 0
	for _, id := range m.targets() {
		e, ok := m.store.ElementByID(id)
		if !ok || e.Common().Locked {
			continue
		}
		b := e.Common()
		m.store.UpdateElement(id, element.BasePatch{X: element.Ptr(b.X + dx), Y: element.Ptr(b.Y + dy)})
		moved++
	}
	if moved == 0 {
		m.errorMessage = "Nothing to move"
	}
}
