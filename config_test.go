package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infocanvas/internal/raster"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFileMissingKeepsDefaults(t *testing.T) {
	c := defaultConfig()
	require.NoError(t, c.loadFile(filepath.Join(t.TempDir(), "nope.toml")))
	assert.Equal(t, defaultConfig(), c)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
save_directory = "charts"
canvas_width = 640.0
canvas_height = 480.0
background = "ivory"
export_format = "JPEG"
export_scale = 2.0
export_quality = 0.5
history_limit = 5
save_thumbnails = true
confirmations = false
`)
	c := defaultConfig()
	require.NoError(t, c.loadFile(path))

	assert.True(t, filepath.IsAbs(c.SaveDirectory))
	assert.Equal(t, "charts", filepath.Base(c.SaveDirectory))
	assert.Equal(t, 640.0, c.CanvasWidth)
	assert.Equal(t, 480.0, c.CanvasHeight)
	assert.Equal(t, "ivory", c.Background)
	assert.Equal(t, 2.0, c.ExportScale)
	assert.True(t, c.SaveThumbnails)
	assert.False(t, c.Confirmations)
	assert.Equal(t, raster.Options{Format: raster.FormatJPEG, Quality: 0.5, Scale: 2}, c.exportOptions(raster.FormatJPEG))
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"format":  `export_format = "gif"`,
		"scale":   `export_scale = 0.0`,
		"huge":    `export_scale = 50.0`,
		"quality": `export_quality = 1.5`,
		"level":   `log_level = "loud"`,
		"canvas":  `canvas_width = 0.0`,
		"syntax":  `canvas_width = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := defaultConfig()
			assert.Error(t, c.loadFile(writeConfig(t, body)))
		})
	}
}

func TestNewStoreUsesConfig(t *testing.T) {
	c := defaultConfig()
	c.CanvasWidth, c.CanvasHeight = 300, 200
	c.Background = "#000000"
	c.HistoryLimit = 3

	s := c.newStore()
	w, h := s.CanvasSize()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)
	assert.Equal(t, "#000000", s.BackgroundColor())
	assert.Equal(t, 3, s.History().Limit())
}

func TestGetSavePath(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "doc.json", c.GetSavePath("doc.json"))

	dir := filepath.Join(t.TempDir(), "saves")
	c.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "doc.json"), c.GetSavePath("doc.json"))
	assert.DirExists(t, dir)

	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	assert.Equal(t, abs, c.GetSavePath(abs))
}
