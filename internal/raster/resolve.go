package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"infocanvas/internal/element"
	"infocanvas/internal/logx"
)

// MaxImageBytes bounds how much of a single image source is read.
const MaxImageBytes = 32 << 20

var ErrBadDataURI = errors.New("raster: malformed data URI")

// ImageLoader fetches and decodes an image element's src.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// SourceLoader loads data URIs, http(s) URLs, file:// URLs and plain file
// paths. The zero value uses http.DefaultClient.
type SourceLoader struct {
	Client *http.Client
}

func (l *SourceLoader) Load(ctx context.Context, src string) (image.Image, error) {
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(io.LimitReader(rc, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", shortSrc(src), err)
	}
	return img, nil
}

func (l *SourceLoader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		data, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.get(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, err
		}
		return os.Open(u.Path)
	default:
		return os.Open(src)
	}
}

func (l *SourceLoader) get(ctx context.Context, src string) (io.ReadCloser, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}

// decodeDataURI returns the payload of data:[<mediatype>][;base64],<data>.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some producers drop the padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return []byte(s), nil
}

func shortSrc(src string) string {
	if len(src) > 64 {
		return src[:64] + "..."
	}
	return src
}

// resolveImages loads every distinct src used by a visible image element.
// Loads run concurrently; a source that fails is logged and left out of
// the result, so its elements are skipped when painting.
func (x *Exporter) resolveImages(ctx context.Context, elems []element.Element) map[string]*image.RGBA {
	var srcs []string
	seen := map[string]bool{}
	for _, e := range elems {
		img, ok := e.(*element.Image)
		if !ok || !img.Visible || img.Src == "" || seen[img.Src] {
			continue
		}
		seen[img.Src] = true
		srcs = append(srcs, img.Src)
	}
	if len(srcs) == 0 {
		return nil
	}

	decoded := make([]*image.RGBA, len(srcs))
	var g errgroup.Group
	g.SetLimit(x.concurrency)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			img, err := x.loader.Load(ctx, src)
			if err != nil {
				logx.Logger().Warn("skipping image", "src", shortSrc(src), "err", err)
				return nil
			}
			decoded[i] = toRGBA(img)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]*image.RGBA, len(srcs))
	for i, src := range srcs {
		if decoded[i] != nil {
			out[src] = decoded[i]
		}
	}
	return out
}
