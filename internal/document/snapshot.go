package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"infocanvas/internal/element"
	"infocanvas/internal/logx"
)

// FormatVersion is written into every captured document.
const FormatVersion = "1.0"

var (
	ErrInvalidDocument    = errors.New("document: invalid document")
	ErrMissingElements    = errors.New("document: elements missing or not an array")
	ErrUnsupportedVersion = errors.New("document: unsupported format version")
)

// Snapshot is the persisted form of a document. It is fully decoupled
// from the Store it was captured from.
type Snapshot struct {
	Version         string       `json:"version"`
	Elements        element.List `json:"elements"`
	CanvasWidth     float64      `json:"canvasWidth"`
	CanvasHeight    float64      `json:"canvasHeight"`
	BackgroundColor string       `json:"backgroundColor"`
	Zoom            float64      `json:"zoom"`
	Timestamp       time.Time    `json:"timestamp"`
}

// Capture returns the current document. It has no side effects.
func (s *Store) Capture() *Snapshot {
	return &Snapshot{
		Version:         FormatVersion,
		Elements:        element.CloneAll(s.elements),
		CanvasWidth:     s.canvasWidth,
		CanvasHeight:    s.canvasHeight,
		BackgroundColor: s.background,
		Zoom:            s.zoom,
		Timestamp:       s.now().UTC(),
	}
}

// CaptureJSON is Capture encoded as the versioned JSON document.
func (s *Store) CaptureJSON() ([]byte, error) {
	return json.Marshal(s.Capture())
}

// DecodeSnapshot parses a JSON document. The elements key must be present
// and hold an array; everything else is optional.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	raw, ok := fields["elements"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, ErrMissingElements
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if snap.Version != "" && !strings.HasPrefix(snap.Version, "1.") && snap.Version != "1" {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedVersion, snap.Version)
	}
	return &snap, nil
}

// Restore replaces the document with the JSON in data. On error the
// document is left exactly as it was.
func (s *Store) Restore(data []byte) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		logx.Logger().Warn("document restore rejected", "err", err)
		return err
	}
	return s.Load(snap)
}

// Load replaces elements, canvas size, background and zoom from snap in
// one undoable step. Zero or empty fields keep their current value.
func (s *Store) Load(snap *Snapshot) error {
	if snap == nil || snap.Elements == nil {
		return ErrMissingElements
	}
	elems := element.CloneAll(snap.Elements)
	seen := make(map[string]bool, len(elems))
	for _, e := range elems {
		b := e.Common()
		if b.ID == "" || seen[b.ID] {
			b.ID = element.NewID(e.Type())
		}
		seen[b.ID] = true
		element.Normalize(e)
	}

	s.mutate("restore", func() {
		s.elements = elems
		if snap.CanvasWidth > 0 {
			s.canvasWidth = ClampCanvasSize(snap.CanvasWidth)
		}
		if snap.CanvasHeight > 0 {
			s.canvasHeight = ClampCanvasSize(snap.CanvasHeight)
		}
		if snap.BackgroundColor != "" {
			s.background = snap.BackgroundColor
		}
		if snap.Zoom > 0 {
			s.zoom = clampZoom(snap.Zoom)
		}
	})
	return nil
}
