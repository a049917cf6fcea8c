// Package codec turns arbitrary raster images into bounded, lossy JPEG data
// URLs suitable for durable storage.
package codec

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when the input cannot be opened as an image.
var ErrDecode = errors.New("cannot decode image")

const dataURLPrefix = "data:image/jpeg;base64,"

// Options bound the output.
type Options struct {
	MaxWidth  int
	Quality   int // 1-100, 70 == 0.7
	MaxPixels int // largest accepted source, checked against the header before decoding
}

// DefaultOptions returns an 800px width cap at quality 70 that accepts
// sources up to 50 megapixels.
func DefaultOptions() Options {
	return Options{MaxWidth: 800, Quality: 70, MaxPixels: 50_000_000}
}

// Payload is an encoded image as a data URL.
type Payload string

// MIME returns the media type declared by the data URL.
func (p Payload) MIME() string {
	s := strings.TrimPrefix(string(p), "data:")
	if i := strings.IndexAny(s, ";,"); i >= 0 {
		return s[:i]
	}
	return ""
}

// Decode returns the raw encoded image bytes.
func (p Payload) Decode() ([]byte, error) {
	s := string(p)
	i := strings.Index(s, ",")
	if !strings.HasPrefix(s, "data:") || i < 0 {
		return nil, fmt.Errorf("not a data URL")
	}
	return base64.StdEncoding.DecodeString(s[i+1:])
}

// Codec compresses images with fixed Options.
type Codec struct {
	opts Options
}

// New returns a Codec. Zero fields in opts fall back to DefaultOptions.
func New(opts Options) *Codec {
	def := DefaultOptions()
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = def.MaxPixels
	}
	return &Codec{opts: opts}
}

// Options returns the effective options.
func (c *Codec) Options() Options {
	return c.opts
}

// Compress decodes r, downscales it to MaxWidth if wider, and re-encodes it
// as JPEG. The work runs on its own goroutine; Compress returns early with
// ctx.Err() if ctx is done first. The worker only touches r while reading it
// into memory, and stops at the next stage once ctx is done.
func (c *Codec) Compress(ctx context.Context, r io.Reader) (Payload, error) {
	type result struct {
		p   Payload
		err error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := c.compress(ctx, r)
		ch <- result{p, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.p, res.err
	}
}

func (c *Codec) compress(ctx context.Context, r io.Reader) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(c.opts.MaxPixels) {
		return "", fmt.Errorf("%w: %dx%d is larger than %d pixels", ErrDecode, cfg.Width, cfg.Height, c.opts.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sb := src.Bounds()
	w, h := TargetSize(sb.Dx(), sb.Dy(), c.opts.MaxWidth)

	// JPEG has no alpha channel; flatten onto white.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.opts.Quality}); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return Payload(dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// TargetSize returns the output dimensions: unchanged when width <= maxWidth,
// otherwise width = maxWidth and height scaled by the same factor.
func TargetSize(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	h := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}
