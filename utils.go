package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"infocanvas/internal/element"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText drops control characters other than whitespace and
// normalizes line endings.
func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(normalized, "\r", "\n"))
}

func elementIcon(e element.Element) string {
	switch e := e.(type) {
	case *element.Text:
		return "T"
	case *element.Shape:
		switch e.ShapeType {
		case element.Rectangle:
			return "▭"
		case element.Circle, element.Ellipse:
			return "◯"
		case element.Triangle:
			return "△"
		case element.Star:
			return "☆"
		case element.SpeechBubble:
			return "◌"
		case element.ArrowLeft:
			return "←"
		case element.ArrowRight:
			return "→"
		}
		return "?"
	case *element.Image:
		return "▣"
	}
	return "?"
}

// elementLabel is the short text shown for an element in the list.
func elementLabel(e element.Element) string {
	label := e.Common().Name
	switch e := e.(type) {
	case *element.Text:
		label = firstLine(e.Content)
	case *element.Shape:
		if e.Text != "" {
			label += ": " + firstLine(e.Text)
		}
	}
	return label
}

func elementDetail(e element.Element) string {
	b := e.Common()
	flags := ""
	if b.Locked {
		flags += " L"
	}
	if !b.Visible {
		flags += " H"
	}
	return fmt.Sprintf("z%-3d %4.0f,%-4.0f %4.0fx%-4.0f%s", b.ZIndex, b.X, b.Y, b.Width, b.Height, flags)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// cascadePosition staggers newly added elements so they don't stack
// exactly on top of each other.
func cascadePosition(n int) (float64, float64) {
	offset := float64(cascadeStart + cascadeStep*(n%cascadeSlots))
	return offset, offset
}

func nextPaletteColor(current string) string {
	for i, c := range palette {
		if strings.EqualFold(c, current) {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

func scanDocFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), docExt) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files
}

func stripDocExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), docExt) {
		return name[:len(name)-len(docExt)]
	}
	return name
}
