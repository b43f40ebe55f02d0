package overlay

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronica/backend/pkg/apperrors"
)

func pngBytes(t *testing.T, width, height int, fill color.NRGBA) []byte {
	t.Helper()
	img := imaging.New(width, height, fill)
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return img
}

func TestQRSize_Bounds(t *testing.T) {
	// 1000x1000 at 5%: area bound is ~223.6, shorter-dimension bound is 200
	assert.Equal(t, 200, QRSize(1000, 1000, 0.05))

	// Elongated image: shorter dimension wins
	assert.Equal(t, 20, QRSize(4000, 100, 0.05))

	// Tiny images still produce a positive size
	assert.Equal(t, 1, QRSize(1, 1, 0.05))
	assert.Greater(t, QRSize(10, 10, 0.05), 0)
}

func TestApply_PreservesDimensionsAndEncoding(t *testing.T) {
	src := pngBytes(t, 400, 300, color.NRGBA{R: 200, A: 255})
	out, err := Apply(src, DefaultSpec("https://preprod.cardanoscan.io/token/asset1test"))
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	src := pngBytes(t, 200, 200, color.NRGBA{G: 128, A: 255})
	orig := make([]byte, len(src))
	copy(orig, src)

	_, err := Apply(src, DefaultSpec("content"))
	require.NoError(t, err)
	assert.Equal(t, orig, src)
}

func TestApply_BaseLayerUntouchedOutsidePlate(t *testing.T) {
	base := color.NRGBA{R: 255, A: 255}
	src := pngBytes(t, 300, 300, base)

	out, err := Apply(src, DefaultSpec("content"))
	require.NoError(t, err)

	img := decodePNG(t, out)
	// Bottom-right placement leaves the opposite corner untouched.
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, base, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
}

func TestApply_PlateChangesTargetCorner(t *testing.T) {
	base := color.NRGBA{R: 255, A: 255}
	src := pngBytes(t, 300, 300, base)

	spec := DefaultSpec("content")
	out, err := Apply(src, spec)
	require.NoError(t, err)

	img := decodePNG(t, out)
	// A point well inside the plate footprint: margin inside the margin-offset
	// plate region at the bottom-right corner.
	x := 300 - spec.Margin - 5
	y := 300 - spec.Margin - 5
	r, g, b, _ := img.At(x, y).RGBA()
	changed := uint8(r>>8) != base.R || uint8(g>>8) != base.G || uint8(b>>8) != base.B
	assert.True(t, changed, "pixel inside the plate footprint must change")
}

func TestApply_CornerPositions(t *testing.T) {
	for _, pos := range []Position{BottomRight, BottomLeft, TopRight, TopLeft} {
		spec := DefaultSpec("content")
		spec.Position = pos
		src := pngBytes(t, 300, 300, color.NRGBA{B: 255, A: 255})

		out, err := Apply(src, spec)
		require.NoError(t, err, "position %s", pos)
		img := decodePNG(t, out)
		assert.Equal(t, 300, img.Bounds().Dx())
	}
}

func TestApply_ClampsOversizedMargin(t *testing.T) {
	spec := DefaultSpec("content")
	spec.Margin = 500 // larger than the image itself

	src := pngBytes(t, 60, 60, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	out, err := Apply(src, spec)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestApply_OverlaidQRDecodesToContent(t *testing.T) {
	content := "https://preprod.cardanoscan.io/token/asset1rjklcrnsdzqp65wjgrg55sy9723kw09mlgvlc3"

	// White base so the plate and its surroundings form one quiet zone.
	src := pngBytes(t, 1000, 1000, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out, err := Apply(src, DefaultSpec(content))
	require.NoError(t, err)

	img := decodePNG(t, out)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err, "overlaid QR code must be scannable")
	assert.Equal(t, content, result.GetText())
}

func TestApply_RejectsNonImageBytes(t *testing.T) {
	_, err := Apply([]byte("definitely not an image"), DefaultSpec("content"))
	require.Error(t, err)

	var decodeErr *apperrors.ImageDecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestParsePosition(t *testing.T) {
	assert.Equal(t, TopLeft, ParsePosition("top-left"))
	assert.Equal(t, BottomRight, ParsePosition("bottom-right"))
	assert.Equal(t, BottomRight, ParsePosition("somewhere-else"))
	assert.Equal(t, BottomRight, ParsePosition(""))
}
