package main

import "fmt"

func (m *model) undo() {
	if !m.store.Undo() {
		m.successMessage = "Nothing to undo"
		return
	}
	left, _ := m.store.History().Depth()
	m.successMessage = fmt.Sprintf("Undone (%d more)", left)
	m.ensureCursorInBounds()
}

func (m *model) redo() {
	if !m.store.Redo() {
		m.successMessage = "Nothing to redo"
		return
	}
	_, left := m.store.History().Depth()
	m.successMessage = fmt.Sprintf("Redone (%d more)", left)
	m.ensureCursorInBounds()
}
