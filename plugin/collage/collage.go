// Package collage stitches trade screenshots into a single annotated image.
// Source images are stacked vertically, centered on a canvas as wide as the
// widest input, optionally prefixed by a header band with the extracted
// trade details.
package collage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// JPEG quality of the encoded collage. Fixed so identical inputs produce
// byte-identical output.
const jpegQuality = 95

// TradeHeader holds the extracted trade details rendered into the header band.
type TradeHeader struct {
	Asset    string // e.g. "BTC/USDT"
	Scenario string // e.g. "Breakout"
	Date     string // e.g. "03.10.2025"
}

// ErrNoImages is returned when Compose is called with no input images.
var ErrNoImages = errors.New("no images to compose")

// DecodeError reports an undecodable input image and its position.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image #%d: %v", e.Index+1, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Compose decodes the given images, stitches them vertically and encodes the
// result as JPEG. When header is non-nil a header band is rendered above the
// stitched images. The whole call fails on the first undecodable image, no
// partial output is produced.
func Compose(images [][]byte, header *TradeHeader) ([]byte, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	decoded, err := loadImages(images)
	if err != nil {
		return nil, err
	}

	canvas := stitch(decoded)

	var result image.Image = canvas
	if header != nil {
		result = addHeader(canvas, header)
	}

	return encodeJPEG(result)
}

// loadImages decodes every input and flattens it to opaque RGB.
func loadImages(images [][]byte) ([]*image.NRGBA, error) {
	decoded := make([]*image.NRGBA, 0, len(images))
	for i, data := range images {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		flat := flatten(img)
		slog.Debug("decoded screenshot",
			"index", i+1,
			"width", flat.Bounds().Dx(),
			"height", flat.Bounds().Dy())
		decoded = append(decoded, flat)
	}
	return decoded, nil
}

// flatten draws the image over a white background, discarding any alpha
// channel or palette the source carried.
func flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Over)
	return out
}

// stitch stacks the images vertically on a white canvas. Canvas width equals
// the widest input, each image is centered horizontally.
func stitch(images []*image.NRGBA) *image.NRGBA {
	maxWidth := 0
	totalHeight := 0
	for _, img := range images {
		if w := img.Bounds().Dx(); w > maxWidth {
			maxWidth = w
		}
		totalHeight += img.Bounds().Dy()
	}

	canvas := imaging.New(maxWidth, totalHeight, color.White)

	y := 0
	for _, img := range images {
		x := (maxWidth - img.Bounds().Dx()) / 2
		canvas = imaging.Paste(canvas, img, image.Pt(x, y))
		y += img.Bounds().Dy()
	}

	return canvas
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, errors.Wrap(err, "encode collage")
	}
	return buf.Bytes(), nil
}
