package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"infocanvas/internal/logx"
	"infocanvas/internal/raster"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config := loadConfig()
	closeLog, err := setupLogging(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "infocanvas: %v\n", err)
	}
	defer closeLog()

	if len(args) > 0 {
		switch args[0] {
		case "render":
			return runRender(config, args[1:])
		case "thumbnail":
			return runThumbnail(args[1:])
		default:
			return errUsage
		}
	}

	p := tea.NewProgram(initialModel(config), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logx.Logger().Error("program exited", "err", err)
		return err
	}
	return nil
}

func initialModel(config *Config) model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0

	return model{
		config:            config,
		store:             config.newStore(),
		exporter:          raster.New(),
		input:             input,
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.width-20, 10)
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.successMessage = ""
			m.errorMessage = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.errorMessage = ""
			m.successMessage = fmt.Sprintf("Exported to %s", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}
		var cmd tea.Cmd
		switch m.mode {
		case ModeNormal:
			cmd = m.handleNormalKey(msg)
		case ModeInput:
			cmd = m.handleInputKey(msg)
		case ModeFileInput:
			cmd = m.handleFileInputKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg)
		}
		return m, cmd
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	// two border rows, plus the status line
	bodyHeight := max(m.height-3, 1)
	var body string
	if m.mode == ModeFileInput {
		body = paneStyle.Render(m.fileView(max(m.width-2, 10), bodyHeight))
	} else {
		list := paneStyle.Render(m.listView(listWidth, bodyHeight))
		previewWidth := max(m.width-listWidth-4, 1)
		preview := paneStyle.Render(m.previewView(previewWidth, bodyHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	}
	return body + "\n" + m.statusLine()
}

func (m model) listView(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(fmt.Sprintf("Layers (%d)", m.store.Len()), width)))

	elems := m.layers()
	if len(elems) == 0 {
		b.WriteString("\n" + dimStyle.Render("empty: t, 1-8 or i to add"))
	}

	rows := max(height-1, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(elems) && i < start+rows; i++ {
		e := elems[i]
		b.WriteString("\n")
		mark := "  "
		if m.store.IsSelected(e.Common().ID) {
			mark = "* "
		}
		detail := elementDetail(e)
		labelWidth := max(width-len(mark)-len([]rune(detail))-3, 1)
		row := fmt.Sprintf("%s%s %-*s %s", mark, elementIcon(e), labelWidth, truncate(elementLabel(e), labelWidth), detail)
		row = truncate(row, width)
		switch {
		case i == m.cursor:
			row = cursorStyle.Render(row)
		case m.store.IsSelected(e.Common().ID):
			row = selectedStyle.Render(row)
		case !e.Common().Visible:
			row = dimStyle.Render(row)
		}
		b.WriteString(row)
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m model) previewView(width, height int) string {
	panX, panY := m.store.Pan()
	selected := make(map[string]bool)
	for _, id := range m.store.SelectedIDs() {
		selected[id] = true
	}
	p := Preview{
		Width:    width,
		Height:   height,
		Zoom:     m.store.Zoom(),
		PanX:     panX,
		PanY:     panY,
		Selected: selected,
		Cursor:   m.currentID(),
	}
	return strings.Join(p.Render(m.store.Capture()), "\n")
}

func (m model) fileView(width, height int) string {
	var b strings.Builder
	switch m.fileOp {
	case FileOpOpen:
		b.WriteString(titleStyle.Render("Open a saved document") + "\n")
	case FileOpSave:
		b.WriteString(titleStyle.Render("Save document") + "\n")
	case FileOpExport:
		b.WriteString(titleStyle.Render("Export as .png, .jpg or .pdf") + "\n")
	}
	b.WriteString(strings.Repeat("─", width) + "\n")

	if m.fileOp == FileOpOpen {
		if len(m.fileList) == 0 {
			b.WriteString(dimStyle.Render("(no "+docExt+" files found)") + "\n")
		}
		rows := max(height-4, 1)
		start := 0
		if m.selectedFileIndex >= rows {
			start = m.selectedFileIndex - rows + 1
		}
		for i := start; i < len(m.fileList) && i < start+rows; i++ {
			name := stripDocExt(m.fileList[i])
			if i == m.selectedFileIndex {
				b.WriteString(cursorStyle.Render("> "+name) + "\n")
			} else {
				b.WriteString("  " + name + "\n")
			}
		}
	}
	b.WriteString(strings.Repeat("─", width) + "\n")
	b.WriteString("Filename: " + m.filename + "█")
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeInput:
		status = fmt.Sprintf("%s %s", m.inputLabel(), m.input.View())
	case ModeFileInput:
		status = "Mode: FILE | Enter=confirm, Esc=cancel"
		if m.fileOp == FileOpOpen {
			status = "Mode: FILE | ↑/↓=navigate list, Type=enter name, Enter=confirm, Esc=cancel"
		}
	case ModeConfirm:
		status = "Mode: CONFIRM | " + m.confirmMessage()
	default:
		modeStr := m.modeString()
		if m.panMode {
			modeStr = "PAN"
		}
		w, h := m.store.CanvasSize()
		status = fmt.Sprintf("Mode: %s | %gx%g @ %.0f%% | %d selected", modeStr, w, h, m.store.Zoom()*100, len(m.store.SelectedIDs()))
		if m.docPath != "" {
			status += " | " + m.docPath
		}
		if m.exporting {
			status += " | exporting"
		}
	}

	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	case m.mode == ModeNormal:
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) inputLabel() string {
	switch m.inputOp {
	case InputAddText:
		return "Add text:"
	case InputAddImage:
		return "Add image:"
	case InputEditContent:
		return "Edit:"
	case InputRename:
		return "Rename:"
	case InputBackground:
		return "Background:"
	}
	return ""
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDelete:
		return fmt.Sprintf("Delete %d element(s)? (y/n)", len(m.confirmIDs))
	case ConfirmClear:
		return "Clear the canvas? (y/n)"
	case ConfirmQuit:
		return "Quit infocanvas? (y/n)"
	case ConfirmNewDocument:
		return "Start a new document? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
	case ConfirmRestoreClipboard:
		return "Replace the document with the clipboard contents? (y/n)"
	}
	return ""
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"infocanvas Help",
	"===============",
	"",
	"Navigation:",
	"-----------",
	"  j/k ↓/↑          Move through the layer list (top layer first)",
	"  g/G              First/last layer",
	"  z                Toggle pan mode (h/j/k/l scroll the preview)",
	"  +/-/0            Zoom in/out, reset zoom and pan",
	"",
	"Selection:",
	"----------",
	"  Enter            Select the layer under the cursor",
	"  Space            Add/remove the layer under the cursor",
	"  a                Select all unlocked layers",
	"  Esc              Clear selection",
	"",
	"Adding:",
	"-------",
	"  t                Add text (\\n starts a new line)",
	"  1-8              Add rectangle, circle, ellipse, triangle, star,",
	"                   speech bubble, left arrow, right arrow",
	"  i                Add image from a path, URL or data URI",
	"",
	"Editing (selection, or the cursor layer):",
	"-----------------------------------------",
	"  H/J/K/L          Nudge 10 units",
	"  e                Edit text, caption or image source",
	"  R                Rename",
	"  f                Cycle color (text color, fill, image tint)",
	"  w                Toggle bold",
	"  r                Rotate 15°",
	"  O                Step opacity down (wraps to 100%)",
	"  F                Flip image horizontally",
	"  d                Duplicate",
	"  x                Delete",
	"  c/p              Copy/paste",
	"  ] [ } {          Forward, backward, to front, to back",
	"  b                Lock/unlock",
	"  v                Show/hide",
	"",
	"Document:",
	"---------",
	"  B                Background color",
	"  C                Clear canvas",
	"  n                New document",
	"  u                Undo",
	"  U/Ctrl+R         Redo",
	"  s                Save (.json)",
	"  o                Open",
	"  S                Export image (.png, .jpg, .pdf)",
	"  y                Copy document JSON to the clipboard",
	"  Y                Replace document from clipboard JSON",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close", start+1, end, len(helpLines))
	return result
}
