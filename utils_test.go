package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infocanvas/internal/element"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "he…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo", 4, "hél…"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncate(tc.in, tc.n), "%q/%d", tc.in, tc.n)
	}
}

func TestCascadePosition(t *testing.T) {
	x, y := cascadePosition(0)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 40.0, y)

	x, _ = cascadePosition(3)
	assert.Equal(t, 100.0, x)

	x, _ = cascadePosition(cascadeSlots)
	assert.Equal(t, 40.0, x)
}

func TestNextPaletteColor(t *testing.T) {
	assert.Equal(t, palette[1], nextPaletteColor(palette[0]))
	assert.Equal(t, palette[1], nextPaletteColor("#3b82f6"))
	assert.Equal(t, palette[0], nextPaletteColor(palette[len(palette)-1]))
	assert.Equal(t, palette[0], nextPaletteColor("papayawhip"))
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "a\nb\tc\nd", cleanClipboardText("  a\r\nb\x00\tc\rd\x1b \n"))
}

func TestScanDocFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.JSON", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.json"), 0755))

	assert.Equal(t, []string{"a.JSON", "b.json"}, scanDocFiles(dir))
	assert.Nil(t, scanDocFiles(filepath.Join(dir, "missing")))
}

func TestStripDocExt(t *testing.T) {
	assert.Equal(t, "deck", stripDocExt("deck.json"))
	assert.Equal(t, "deck", stripDocExt("deck.JSON"))
	assert.Equal(t, "deck.txt", stripDocExt("deck.txt"))
}

func TestElementLabels(t *testing.T) {
	txt := element.NewText(0, 0, "Title\nsubtitle")
	assert.Equal(t, "T", elementIcon(txt))
	assert.Equal(t, "Title", elementLabel(txt))

	sh := element.NewShape(element.ArrowRight, 0, 0)
	assert.Equal(t, "→", elementIcon(sh))
	assert.Equal(t, "Right Arrow", elementLabel(sh))
	sh.Text = "Next"
	assert.Equal(t, "Right Arrow: Next", elementLabel(sh))

	img := element.NewImage(0, 0, "logo.png")
	img.Locked = true
	img.Visible = false
	assert.Equal(t, "▣", elementIcon(img))
	assert.Contains(t, elementDetail(img), "300x200")
	assert.Contains(t, elementDetail(img), " L H")
}
