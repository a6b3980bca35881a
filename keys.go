package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"infocanvas/internal/element"
	"infocanvas/internal/raster"
)

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "q", "ctrl+c":
		if key == "ctrl+c" || !m.config.Confirmations {
			return tea.Quit
		}
		m.confirm(ConfirmQuit, nil)
	case "?":
		m.help = true
		m.helpScroll = 0

	case "h", "j", "k", "l", "left", "right", "up", "down", "g", "G", "home", "end":
		m.handleNavigation(key)
	case "H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.nudge(key)
	case "z":
		m.panMode = !m.panMode

	case " ":
		if id := m.currentID(); id != "" {
			m.store.SelectElement(id, true)
		}
	case "enter":
		if id := m.currentID(); id != "" {
			m.store.SelectElement(id, false)
		}
	case "a":
		m.store.SelectAll()
	case "esc":
		m.store.ClearSelection()
		m.panMode = false

	case "t":
		return m.prompt(InputAddText, "text", "")
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.addShape(element.ShapeTypes[key[0]-'1'])
	case "i":
		return m.prompt(InputAddImage, "path, URL or data URI", "")
	case "e":
		return m.editContent()
	case "R":
		if e, ok := m.current(); ok {
			m.inputTarget = e.Common().ID
			return m.prompt(InputRename, "name", e.Common().Name)
		}
	case "B":
		return m.prompt(InputBackground, "#RRGGBB, rgb() or a color name", m.store.BackgroundColor())

	case "f":
		m.recolor()
	case "w":
		m.toggleBold()
	case "r":
		m.eachTarget(func(e element.Element) element.Patch {
			rot := math.Mod(e.Common().Rotation+rotateStep, 360)
			return element.BasePatch{Rotation: &rot}
		})
	case "O":
		m.eachTarget(func(e element.Element) element.Patch {
			op := e.Common().Opacity - opacityStep
			if op < opacityStep/2 {
				op = 1
			}
			op = math.Round(op*10) / 10
			return element.BasePatch{Opacity: &op}
		})
	case "F":
		m.eachTarget(func(e element.Element) element.Patch {
			img, ok := e.(*element.Image)
			if !ok {
				return nil
			}
			return element.ImagePatch{FlipHorizontal: element.Ptr(!img.FlipHorizontal)}
		})

	case "d":
		if id := m.currentID(); id != "" {
			if newID, ok := m.store.DuplicateElement(id); ok {
				m.focus(newID)
				m.successMessage = "Duplicated"
			}
		}
	case "x", "delete":
		ids := m.targets()
		if len(ids) == 0 {
			break
		}
		if m.config.Confirmations {
			m.confirm(ConfirmDelete, ids)
			break
		}
		m.store.DeleteElements(ids...)
		m.ensureCursorInBounds()
	case "c":
		if n := m.store.CopyToClipboard(); n > 0 {
			m.successMessage = fmt.Sprintf("Copied %d", n)
		} else {
			m.errorMessage = "Nothing selected"
		}
	case "p":
		if ids := m.store.PasteFromClipboard(); len(ids) > 0 {
			m.focus(ids[len(ids)-1])
			m.successMessage = fmt.Sprintf("Pasted %d", len(ids))
		}

	case "]":
		m.restack(m.store.BringForward)
	case "[":
		m.restack(m.store.SendBackward)
	case "}":
		m.restack(m.store.BringToFront)
	case "{":
		m.restack(m.store.SendToBack)

	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()

	case "b":
		for _, id := range m.targets() {
			m.store.ToggleLock(id)
		}
	case "v":
		for _, id := range m.targets() {
			m.store.ToggleVisibility(id)
		}

	case "+", "=":
		m.store.ZoomIn()
	case "-":
		m.store.ZoomOut()
	case "0":
		m.store.SetZoom(1)
		m.store.SetPan(0, 0)

	case "C":
		if m.config.Confirmations {
			m.confirm(ConfirmClear, nil)
			break
		}
		m.store.ClearCanvas()
		m.ensureCursorInBounds()
	case "n":
		if m.config.Confirmations {
			m.confirm(ConfirmNewDocument, nil)
			break
		}
		m.newDocument()

	case "s":
		m.beginFileInput(FileOpSave)
	case "S":
		if m.exporting {
			m.errorMessage = "Export already running"
			break
		}
		m.beginFileInput(FileOpExport)
	case "o":
		m.beginFileInput(FileOpOpen)

	case "y":
		data, err := m.store.CaptureJSON()
		if err == nil {
			err = writeClipboardText(string(data))
		}
		if err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
			break
		}
		m.successMessage = "Document copied to clipboard"
	case "Y":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			break
		}
		m.pendingData = []byte(cleanClipboardText(text))
		m.confirm(ConfirmRestoreClipboard, nil)
	}

	return nil
}

func (m *model) prompt(op InputOperation, placeholder, value string) tea.Cmd {
	m.mode = ModeInput
	m.inputOp = op
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) confirm(action ConfirmAction, ids []string) {
	m.mode = ModeConfirm
	m.confirmAction = action
	m.confirmIDs = ids
}

// eachTarget applies the patch built by fn to every targeted element.
// A nil patch skips the element.
func (m *model) eachTarget(fn func(element.Element) element.Patch) {
	for _, id := range m.targets() {
		e, ok := m.store.ElementByID(id)
		if !ok || e.Common().Locked {
			continue
		}
		if p := fn(e); p != nil {
			m.store.UpdateElement(id, p)
		}
	}
}

func (m *model) restack(fn func(id string)) {
	id := m.currentID()
	if id == "" {
		return
	}
	fn(id)
	m.focus(id)
}

func (m *model) addShape(kind element.ShapeType) {
	x, y := cascadePosition(m.store.Len())
	m.focus(m.store.AddElement(element.NewShape(kind, x, y)))
}

func (m *model) editContent() tea.Cmd {
	e, ok := m.current()
	if !ok {
		return nil
	}
	m.inputTarget = e.Common().ID
	switch e := e.(type) {
	case *element.Text:
		return m.prompt(InputEditContent, "text (\\n for a new line)", strings.ReplaceAll(e.Content, "\n", `\n`))
	case *element.Shape:
		return m.prompt(InputEditContent, "caption", strings.ReplaceAll(e.Text, "\n", `\n`))
	case *element.Image:
		return m.prompt(InputEditContent, "path, URL or data URI", e.Src)
	}
	return nil
}

// recolor steps text color, shape fill or image tint through the palette.
func (m *model) recolor() {
	m.eachTarget(func(e element.Element) element.Patch {
		switch e := e.(type) {
		case *element.Text:
			return element.TextPatch{Color: element.Ptr(nextPaletteColor(e.Color))}
		case *element.Shape:
			return element.ShapePatch{Fill: element.Ptr(nextPaletteColor(e.Fill))}
		case *element.Image:
			current := ""
			if e.ColorOverlay != nil {
				current = e.ColorOverlay.Color
			}
			next := nextPaletteColor(current)
			if next == palette[0] && current != "" {
				return element.ImagePatch{ClearOverlay: true}
			}
			return element.ImagePatch{ColorOverlay: &element.Overlay{Color: next, Opacity: 0.3}}
		}
		return nil
	})
}

func (m *model) toggleBold() {
	m.eachTarget(func(e element.Element) element.Patch {
		switch e := e.(type) {
		case *element.Text:
			return element.TextPatch{Bold: element.Ptr(!e.Bold)}
		case *element.Shape:
			style := e.CaptionStyle()
			style.Bold = !style.Bold
			return element.ShapePatch{TextStyle: &style}
		}
		return nil
	})
}

func (m *model) newDocument() {
	m.store = m.config.newStore()
	m.docPath = ""
	m.cursor = 0
	m.successMessage = "New document"
}

// handleInputKey drives the single-line prompt.
func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.errorMessage = ""
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.submitInput(value)
		if m.errorMessage == "" {
			m.closePrompt()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) closePrompt() {
	m.input.Blur()
	m.input.SetValue("")
	m.inputTarget = ""
	m.mode = ModeNormal
}

func (m *model) submitInput(value string) {
	m.errorMessage = ""
	unescaped := strings.ReplaceAll(value, `\n`, "\n")
	switch m.inputOp {
	case InputAddText:
		if value == "" {
			return
		}
		x, y := cascadePosition(m.store.Len())
		m.focus(m.store.AddElement(element.NewText(x, y, unescaped)))
	case InputAddImage:
		if value == "" {
			return
		}
		x, y := cascadePosition(m.store.Len())
		m.focus(m.store.AddElement(element.NewImage(x, y, value)))
	case InputEditContent:
		e, ok := m.store.ElementByID(m.inputTarget)
		if !ok {
			return
		}
		switch e.(type) {
		case *element.Text:
			m.store.UpdateElement(m.inputTarget, element.TextPatch{Content: &unescaped})
		case *element.Shape:
			m.store.UpdateElement(m.inputTarget, element.ShapePatch{Text: &unescaped})
		case *element.Image:
			m.store.UpdateElement(m.inputTarget, element.ImagePatch{Src: &value})
		}
	case InputRename:
		if value == "" {
			m.errorMessage = "Name cannot be empty"
			return
		}
		m.store.UpdateElement(m.inputTarget, element.BasePatch{Name: &value})
	case InputBackground:
		if _, ok := raster.ParseColor(value); !ok {
			m.errorMessage = fmt.Sprintf("Unknown color %q", value)
			return
		}
		m.store.SetBackgroundColor(value)
	}
}

func (m *model) beginFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.filename = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	if m.docPath != "" && op == FileOpSave {
		m.filename = stripDocExt(filepath.Base(m.docPath))
	}
	if op == FileOpOpen {
		m.fileList = scanDocFiles(m.config.GetSavePath("."))
		if len(m.fileList) > 0 {
			m.selectedFileIndex = 0
			m.filename = stripDocExt(m.fileList[0])
		}
	}
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return nil
	case msg.String() == "up" || msg.String() == "down":
		m.stepFileList(msg.String() == "down")
		return nil
	case msg.Type == tea.KeyEnter:
		return m.submitFile()
	case msg.Type == tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
			m.selectedFileIndex = -1
		}
		return nil
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
		m.selectedFileIndex = -1
	case msg.Type == tea.KeySpace:
		m.filename += " "
		m.selectedFileIndex = -1
	}
	return nil
}

// stepFileList walks the open dialog's list, but only while the name
// still matches a listed file; once the user types, arrows do nothing.
func (m *model) stepFileList(down bool) {
	if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
		return
	}
	if m.filename != "" && (m.selectedFileIndex < 0 || m.filename != stripDocExt(m.fileList[m.selectedFileIndex])) {
		return
	}
	n := len(m.fileList)
	switch {
	case m.selectedFileIndex < 0 && down:
		m.selectedFileIndex = 0
	case m.selectedFileIndex < 0:
		m.selectedFileIndex = n - 1
	case down:
		m.selectedFileIndex = (m.selectedFileIndex + 1) % n
	default:
		m.selectedFileIndex = (m.selectedFileIndex - 1 + n) % n
	}
	m.filename = stripDocExt(m.fileList[m.selectedFileIndex])
}

func (m *model) submitFile() tea.Cmd {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return nil
	}
	switch m.fileOp {
	case FileOpSave:
		if !strings.HasSuffix(strings.ToLower(name), docExt) {
			name += docExt
		}
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); err == nil && path != m.docPath {
			m.filename = path
			m.confirm(ConfirmOverwriteFile, nil)
			return nil
		}
		m.save(path)
	case FileOpOpen:
		if !strings.HasSuffix(strings.ToLower(name), docExt) {
			name += docExt
		}
		m.open(m.config.GetSavePath(name))
	case FileOpExport:
		path, format, err := formatForPath(m.config.GetSavePath(name), m.config.ExportFormat)
		if err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		m.mode = ModeNormal
		m.filename = ""
		m.exporting = true
		m.successMessage = "Exporting..."
		return exportCmd(m.exporter, m.store.Capture(), path, m.config.exportOptions(format))
	}
	if m.errorMessage == "" {
		m.mode = ModeNormal
		m.filename = ""
	}
	return nil
}

func (m *model) save(path string) {
	if err := saveDocument(m.store, path); err != nil {
		m.errorMessage = fmt.Sprintf("Error saving file: %v", err)
		return
	}
	m.docPath = path
	if m.config.SaveThumbnails {
		if err := writeThumbnail(context.Background(), m.exporter, m.store.Capture(), thumbnailPath(path)); err != nil {
			m.errorMessage = fmt.Sprintf("Saved, but thumbnail failed: %v", err)
			return
		}
	}
	m.successMessage = fmt.Sprintf("Saved to %s", path)
}

func (m *model) open(path string) {
	snap, err := readDocument(path)
	if err == nil {
		err = m.store.Load(snap)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error opening file: %v", err)
		return
	}
	m.docPath = path
	m.cursor = 0
	m.successMessage = fmt.Sprintf("Opened %s", path)
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmIDs = nil
		m.pendingData = nil
		if m.confirmAction == ConfirmOverwriteFile {
			m.filename = ""
		}
		return nil
	default:
		return nil
	}

	m.mode = ModeNormal
	switch m.confirmAction {
	case ConfirmQuit:
		return tea.Quit
	case ConfirmDelete:
		m.store.DeleteElements(m.confirmIDs...)
		m.successMessage = fmt.Sprintf("Deleted %d", len(m.confirmIDs))
	case ConfirmClear:
		m.store.ClearCanvas()
		m.successMessage = "Canvas cleared"
	case ConfirmNewDocument:
		m.newDocument()
	case ConfirmOverwriteFile:
		m.save(m.filename)
		m.filename = ""
	case ConfirmRestoreClipboard:
		if err := m.store.Restore(m.pendingData); err != nil {
			m.errorMessage = fmt.Sprintf("Restore failed: %v", err)
		} else {
			m.successMessage = "Restored from clipboard"
		}
	}
	m.confirmIDs = nil
	m.pendingData = nil
	m.ensureCursorInBounds()
	return nil
}
