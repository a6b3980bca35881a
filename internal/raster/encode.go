package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"
)

// Encode writes img in the format named by opts. PDF output is a single
// page sized in points to the document, holding the raster as a PNG.
func Encode(w io.Writer, img *image.RGBA, opts Options) error {
	opts = opts.normalized()
	switch opts.Format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		q := min(max(int(opts.Quality*100+0.5), 1), 100)
		return jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: q})
	case FormatPDF:
		return encodePDF(w, img, opts.Scale)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, opts.Format)
}

// DataURI encodes img and wraps it as data:<mime>;base64,<payload>.
func DataURI(img *image.RGBA, opts Options) (string, error) {
	opts = opts.normalized()
	var buf bytes.Buffer
	if err := Encode(&buf, img, opts); err != nil {
		return "", err
	}
	return "data:" + opts.Format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// flatten composites img over white; JPEG has no alpha channel.
func flatten(img *image.RGBA) image.Image {
	if img.Opaque() {
		return img
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

func encodePDF(w io.Writer, img *image.RGBA, scale float64) error {
	b := img.Bounds()
	pw, ph := float64(b.Dx())/scale, float64(b.Dy())/scale

	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pw, Ht: ph},
		OrientationStr: "P",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opt, &raster)
	pdf.ImageOptions("canvas", 0, 0, pw, ph, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return pdf.Output(w)
}
