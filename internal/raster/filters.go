package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/draw"

	"infocanvas/internal/element"
)

// applyFilters runs the brightness, contrast and saturation percentages
// over img. 100 leaves a channel alone, 0 removes it, 200 doubles it.
func applyFilters(img *image.RGBA, f element.Filters) *image.RGBA {
	if f.IsNeutral() {
		return img
	}
	if f.Brightness != 100 {
		img = adjust.Brightness(img, f.Brightness/100-1)
	}
	if f.Contrast != 100 {
		img = adjust.Contrast(img, f.Contrast/100-1)
	}
	if f.Saturation != 100 {
		img = adjust.Saturation(img, f.Saturation/100-1)
	}
	return img
}

// applyOverlay tints img with a multiply blend of the overlay color, mixed
// back in at the overlay's opacity.
func applyOverlay(img *image.RGBA, o *element.Overlay) *image.RGBA {
	if o == nil || o.Opacity <= 0 {
		return img
	}
	c, ok := ParseColor(o.Color)
	if !ok || c.A == 0 {
		return img
	}
	solid := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	tint := blend.Multiply(img, fill(img.Bounds(), solid))
	mixed := blend.Opacity(img, tint, min(o.Opacity, 1))
	keepAlpha(mixed, img)
	return mixed
}

func fill(r image.Rectangle, src image.Image) *image.RGBA {
	dst := image.NewRGBA(r)
	draw.Draw(dst, r, src, image.Point{}, draw.Src)
	return dst
}

// toRGBA copies img into an RGBA anchored at the origin, which is what the
// filters and the painter expect.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return clone.AsRGBA(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// keepAlpha restores the coverage of orig onto dst so that transparent
// areas of an image stay transparent after blending.
func keepAlpha(dst, orig *image.RGBA) {
	b := dst.Bounds().Intersect(orig.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := orig.RGBAAt(x, y)
			if o.A == 255 {
				continue
			}
			d := dst.RGBAAt(x, y)
			// premultiplied: scale the blended color down to the original coverage
			if d.A > 0 {
				k := float64(o.A) / float64(d.A)
				d.R = uint8(float64(d.R) * k)
				d.G = uint8(float64(d.G) * k)
				d.B = uint8(float64(d.B) * k)
			}
			d.A = o.A
			dst.SetRGBA(x, y, d)
		}
	}
}
