// Package raster paints document snapshots onto an off-screen surface and
// encodes the result as PNG, JPEG or PDF.
//
// Rendering runs in two phases. Every image source is fetched and decoded
// first, concurrently; then all elements are painted synchronously in
// ascending zIndex, so load order never affects the output.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"net/http"
	"strings"

	"github.com/fogleman/gg"

	"infocanvas/internal/document"
	"infocanvas/internal/element"
	"infocanvas/internal/logx"
)

const (
	DefaultQuality = 0.92
	MaxScale       = 10

	// MaxPixels caps the surface area. Larger renders are scaled down to fit.
	MaxPixels = 100_000_000

	ThumbnailWidth   = 320
	ThumbnailHeight  = 240
	ThumbnailQuality = 0.8

	defaultConcurrency = 4
)

var ErrUnsupportedFormat = errors.New("raster: unsupported format")

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts png, jpg, jpeg and pdf in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, s)
}

// MIMEType is the media type written into data URIs.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "image/png"
}

// Options controls one export. Zero values pick PNG, DefaultQuality and
// scale 1.
type Options struct {
	Format  Format
	Quality float64
	Scale   float64
}

func (o Options) normalized() Options {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Format == "jpeg" {
		o.Format = FormatJPEG
	}
	switch {
	case o.Quality == 0 || math.IsNaN(o.Quality):
		o.Quality = DefaultQuality
	default:
		o.Quality = min(max(o.Quality, 0), 1)
	}
	o.Scale = normScale(o.Scale)
	return o
}

func normScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) {
		return 1
	}
	return min(s, MaxScale)
}

type Exporter struct {
	loader      ImageLoader
	concurrency int
	maxPixels   float64
}

type Option func(*Exporter)

// WithLoader replaces the image loader.
func WithLoader(l ImageLoader) Option {
	return func(x *Exporter) { x.loader = l }
}

// WithHTTPClient sets the client used for http(s) image sources.
func WithHTTPClient(c *http.Client) Option {
	return func(x *Exporter) { x.loader = &SourceLoader{Client: c} }
}

// WithConcurrency bounds the number of images loaded at once.
func WithConcurrency(n int) Option {
	return func(x *Exporter) {
		if n > 0 {
			x.concurrency = n
		}
	}
}

// WithMaxPixels lowers or raises the surface area cap.
func WithMaxPixels(n int) Option {
	return func(x *Exporter) {
		if n > 0 {
			x.maxPixels = float64(n)
		}
	}
}

func New(opts ...Option) *Exporter {
	x := &Exporter{
		loader:      &SourceLoader{},
		concurrency: defaultConcurrency,
		maxPixels:   MaxPixels,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Render paints snap at the given scale. The surface is
// ceil(canvasWidth*scale) by ceil(canvasHeight*scale) pixels and all drawing
// happens in document units. When that would exceed the exporter's pixel
// cap the scale is lowered until it fits. Elements that cannot be painted
// are logged and skipped; Render always produces an image.
func (x *Exporter) Render(ctx context.Context, snap *document.Snapshot, scale float64) *image.RGBA {
	cw := document.ClampCanvasSize(snap.CanvasWidth)
	ch := document.ClampCanvasSize(snap.CanvasHeight)
	scale = fitScale(cw, ch, normScale(scale), x.maxPixels)
	w := surfaceSize(cw, scale)
	h := surfaceSize(ch, scale)

	elems := element.CloneAll(snap.Elements)
	document.SortByZ(elems)
	images := x.resolveImages(ctx, elems)

	dc := gg.NewContext(w, h)
	dc.SetColor(paintColor(snap.BackgroundColor, white))
	dc.Clear()
	dc.Scale(scale, scale)

	p := &painter{scale: scale, faces: newFaceCache(), images: images}
	defer p.faces.close()

	for _, e := range elems {
		b := e.Common()
		if !b.Visible || b.Opacity <= 0 {
			continue
		}
		if err := p.paint(dc, e); err != nil {
			logx.Logger().Warn("skipping element", "id", b.ID, "err", err)
		}
	}

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	return toRGBA(dc.Image())
}

// fitScale lowers scale so that the rounded-up surface of a cw by ch
// canvas stays within limit pixels. It solves
// (cw*s+1)*(ch*s+1) = limit, which bounds the ceil of both sides.
func fitScale(cw, ch, scale, limit float64) float64 {
	if (cw*scale+1)*(ch*scale+1) <= limit {
		return scale
	}
	a, b := cw*ch, cw+ch
	s := (math.Sqrt(b*b-4*a*(1-limit)) - b) / (2 * a)
	logx.Logger().Warn("render scale reduced to fit pixel cap",
		"requested", scale, "scale", s, "limit", limit)
	return max(s, 0)
}

// surfaceSize rounds a scaled length up to whole pixels, ignoring float
// noise like 319.99999999999997.
func surfaceSize(length, scale float64) int {
	return max(int(math.Ceil(length*scale-1e-9)), 1)
}

// Export renders snap and returns it as a base64 data URI.
func (x *Exporter) Export(ctx context.Context, snap *document.Snapshot, opts Options) (string, error) {
	opts = opts.normalized()
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return "", err
	}
	img := x.Render(ctx, snap, opts.Scale)
	uri, err := DataURI(img, opts)
	if err != nil {
		return "", err
	}
	logx.Logger().Debug("exported document",
		"format", opts.Format, "scale", opts.Scale,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "bytes", len(uri))
	return uri, nil
}

// ThumbnailScale fits a canvas into the thumbnail box without upscaling.
func ThumbnailScale(canvasWidth, canvasHeight float64) float64 {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return 1
	}
	return min(ThumbnailWidth/canvasWidth, ThumbnailHeight/canvasHeight, 1)
}

// Thumbnail is Export at thumbnail scale as a JPEG.
func (x *Exporter) Thumbnail(ctx context.Context, snap *document.Snapshot) (string, error) {
	return x.Export(ctx, snap, Options{
		Format:  FormatJPEG,
		Quality: ThumbnailQuality,
		Scale:   ThumbnailScale(snap.CanvasWidth, snap.CanvasHeight),
	})
}
