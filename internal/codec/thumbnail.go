package codec

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail decodes p and fits it inside a cols x rows box, keeping the
// aspect ratio. Used for terminal previews, so speed beats quality.
func Thumbnail(p Payload, cols, rows int) (image.Image, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("thumbnail box %dx%d is empty", cols, rows)
	}
	data, err := p.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	sb := src.Bounds()
	w, h := cols, sb.Dy()*cols/max(sb.Dx(), 1)
	if h > rows {
		w, h = sb.Dx()*rows/max(sb.Dy(), 1), rows
	}
	w, h = max(w, 1), max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst, nil
}
