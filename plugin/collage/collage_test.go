package collage

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func solidPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	return encodePNG(t, imaging.New(width, height, c))
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestComposeDimensions(t *testing.T) {
	images := [][]byte{
		solidPNG(t, 100, 50, color.NRGBA{R: 200, A: 255}),
		solidPNG(t, 200, 30, color.NRGBA{G: 200, A: 255}),
		solidPNG(t, 150, 20, color.NRGBA{B: 200, A: 255}),
	}

	out, err := Compose(images, nil)
	require.NoError(t, err)

	width, height := decodeSize(t, out)
	assert.Equal(t, 200, width, "canvas width must equal the widest input")
	assert.Equal(t, 100, height, "canvas height must equal the sum of input heights")
}

func TestComposeSingleImage(t *testing.T) {
	out, err := Compose([][]byte{solidPNG(t, 64, 48, color.White)}, nil)
	require.NoError(t, err)

	width, height := decodeSize(t, out)
	assert.Equal(t, 64, width)
	assert.Equal(t, 48, height)
}

func TestComposeHeaderAddsBand(t *testing.T) {
	images := [][]byte{
		solidPNG(t, 400, 120, color.NRGBA{R: 10, G: 20, B: 30, A: 255}),
		solidPNG(t, 300, 80, color.NRGBA{R: 30, G: 20, B: 10, A: 255}),
	}
	header := &TradeHeader{Asset: "BTC/USDT", Scenario: "Breakout", Date: "03.10.2025"}

	out, err := Compose(images, header)
	require.NoError(t, err)

	width, height := decodeSize(t, out)
	assert.Equal(t, 400, width, "header must not change the canvas width")
	assert.Equal(t, 200+HeaderHeight, height, "header must add exactly the band height")
}

func TestComposeDeterministic(t *testing.T) {
	images := [][]byte{
		solidPNG(t, 120, 60, color.NRGBA{R: 120, G: 10, B: 10, A: 255}),
		solidPNG(t, 90, 40, color.NRGBA{R: 10, G: 120, B: 10, A: 255}),
	}
	header := &TradeHeader{Asset: "ETH/USDT", Scenario: "Retest", Date: "01.01.2025"}

	first, err := Compose(images, header)
	require.NoError(t, err)
	second, err := Compose(images, header)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical inputs must produce byte-identical output")
}

func TestComposeEmptyInput(t *testing.T) {
	out, err := Compose(nil, nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestComposeDecodeError(t *testing.T) {
	images := [][]byte{
		solidPNG(t, 50, 50, color.White),
		[]byte("definitely not an image"),
	}

	out, err := Compose(images, nil)
	assert.Nil(t, out, "no partial output on decode failure")

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 1, decodeErr.Index)
}

func TestComposeFlattensTransparency(t *testing.T) {
	transparent := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 10, 10)))

	out, err := Compose([][]byte{transparent}, nil)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, g, b, _ := img.At(5, 5).RGBA()
	// Transparent pixels flatten against white; allow for JPEG loss.
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}
