package main

import (
	"github.com/charmbracelet/bubbles/textinput"

	"infocanvas/internal/document"
	"infocanvas/internal/raster"
)

type model struct {
	config   *Config
	store    *document.Store
	exporter *raster.Exporter
	// docPath is where the document was last saved or opened from.
	docPath string

	width      int
	height     int
	cursor     int
	panMode    bool
	mode       Mode
	help       bool
	helpScroll int

	input   textinput.Model
	inputOp InputOperation
	// inputTarget is the element an edit or rename prompt applies to.
	inputTarget string

	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation

	confirmAction ConfirmAction
	confirmIDs    []string
	pendingData   []byte

	exporting      bool
	errorMessage   string
	successMessage string
}

type exportDoneMsg struct {
	path string
	err  error
}
