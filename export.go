package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"infocanvas/internal/document"
	"infocanvas/internal/logx"
	"infocanvas/internal/raster"
)

// formatForPath picks the export format from the file extension, falling
// back to the configured default when there is none.
func formatForPath(path, fallback string) (string, raster.Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		f, err := raster.ParseFormat(fallback)
		if err != nil {
			return "", "", err
		}
		return path + "." + string(f), f, nil
	}
	f, err := raster.ParseFormat(ext)
	return path, f, err
}

func exportToFile(ctx context.Context, x *raster.Exporter, snap *document.Snapshot, path string, opts raster.Options) error {
	img := x.Render(ctx, snap, opts.Scale)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.Encode(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// thumbnailPath puts a thumbnail next to a saved document.
func thumbnailPath(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".thumb.jpg"
}

func writeThumbnail(ctx context.Context, x *raster.Exporter, snap *document.Snapshot, path string) error {
	return exportToFile(ctx, x, snap, path, raster.Options{
		Format:  raster.FormatJPEG,
		Quality: raster.ThumbnailQuality,
		Scale:   raster.ThumbnailScale(snap.CanvasWidth, snap.CanvasHeight),
	})
}

// exportCmd renders off the UI goroutine. snap is already decoupled from
// the store, so editing can continue while it runs.
func exportCmd(x *raster.Exporter, snap *document.Snapshot, path string, opts raster.Options) tea.Cmd {
	return func() tea.Msg {
		err := exportToFile(context.Background(), x, snap, path, opts)
		if err != nil {
			logx.Logger().Error("export failed", "path", path, "err", err)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

func saveDocument(store *document.Store, path string) error {
	data, err := store.CaptureJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readDocument(path string) (*document.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := document.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

var errUsage = errors.New("usage: infocanvas render <doc.json> <out.png|out.jpg|out.pdf> [scale]\n       infocanvas thumbnail <doc.json>")

// runRender is the headless entry point: render a saved document to a file.
func runRender(cfg *Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}
	snap, err := readDocument(args[0])
	if err != nil {
		return err
	}
	path, format, err := formatForPath(args[1], cfg.ExportFormat)
	if err != nil {
		return err
	}
	opts := cfg.exportOptions(format)
	if len(args) == 3 {
		scale, err := strconv.ParseFloat(args[2], 64)
		if err != nil || scale <= 0 {
			return fmt.Errorf("invalid scale %q", args[2])
		}
		opts.Scale = scale
	}
	if err := exportToFile(context.Background(), raster.New(), snap, path, opts); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// runThumbnail prints a document's thumbnail as a data URI.
func runThumbnail(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	snap, err := readDocument(args[0])
	if err != nil {
		return err
	}
	uri, err := raster.New().Thumbnail(context.Background(), snap)
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}
