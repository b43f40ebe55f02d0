// Package overlay composites a QR code onto a captured image before it is
// uploaded, so the minted asset carries its own verification link.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chronica/backend/pkg/apperrors"
)

// Position names the corner the QR plate is anchored to.
type Position string

const (
	BottomRight Position = "bottom-right"
	BottomLeft  Position = "bottom-left"
	TopRight    Position = "top-right"
	TopLeft     Position = "top-left"
)

// ParsePosition maps a config string to a Position, defaulting to
// bottom-right for anything unrecognized.
func ParsePosition(s string) Position {
	switch Position(s) {
	case BottomLeft, TopRight, TopLeft:
		return Position(s)
	default:
		return BottomRight
	}
}

// Spec configures one overlay pass. Constructed fresh per request.
type Spec struct {
	Content           string
	SizeFraction      float64 // QR area as a fraction of the image area
	BackgroundColor   color.Color
	BackgroundOpacity float64 // 0..1
	Position          Position
	Margin            int // pixels between QR code and plate edge, and plate and image edge
}

// DefaultSpec mirrors the capture pipeline defaults: 5% of the image area on
// a 70% white plate in the bottom-right corner.
func DefaultSpec(content string) Spec {
	return Spec{
		Content:           content,
		SizeFraction:      0.05,
		BackgroundColor:   color.White,
		BackgroundOpacity: 0.7,
		Position:          BottomRight,
		Margin:            10,
	}
}

// QRSize returns the QR edge length in pixels for an image of the given
// dimensions: bounded by sizeFraction of the total area and by 20% of the
// shorter dimension, so the code never dominates small or elongated images.
// Always at least 1.
func QRSize(width, height int, sizeFraction float64) int {
	byArea := math.Sqrt(float64(width) * float64(height) * sizeFraction)
	shorter := float64(width)
	if height < width {
		shorter = float64(height)
	}
	size := int(math.Min(byArea, shorter*0.2))
	if size < 1 {
		size = 1
	}
	return size
}

// Apply renders a QR code for spec.Content, places it on a semi-transparent
// backing plate and composites the plate onto imageData at the configured
// corner. The result is re-encoded in the source image's format; the input
// slice is never modified. Non-image bytes yield an ImageDecodeError.
func Apply(imageData []byte, spec Spec) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, &apperrors.ImageDecodeError{Err: err}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	qrSize := QRSize(width, height, spec.SizeFraction)

	qr, err := qrcode.New(spec.Content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	qr.DisableBorder = true
	qr.BackgroundColor = color.Transparent
	qr.ForegroundColor = color.Black
	qrImage := qr.Image(qrSize)

	// Square plate with the QR inset by the margin on every side.
	plateSize := qrSize + 2*spec.Margin
	plate := imaging.New(plateSize, plateSize, plateColor(spec))
	plate = imaging.Overlay(plate, qrImage, image.Pt(spec.Margin, spec.Margin), 1.0)

	left, top := platePosition(width, height, plateSize, spec.Margin, spec.Position)
	composited := imaging.Overlay(img, plate, image.Pt(left, top), 1.0)

	var buf bytes.Buffer
	if err := encode(&buf, composited, format); err != nil {
		return nil, fmt.Errorf("failed to re-encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func plateColor(spec Spec) color.NRGBA {
	c := spec.BackgroundColor
	if c == nil {
		c = color.White
	}
	opacity := spec.BackgroundOpacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(opacity*255 + 0.5),
	}
}

// platePosition anchors the plate to the requested corner, margin pixels from
// the image edge. Offsets are clamped at 0 so a margin larger than the image
// never pushes the plate off-canvas.
func platePosition(width, height, plateSize, margin int, pos Position) (left, top int) {
	switch pos {
	case BottomLeft:
		left, top = margin, height-plateSize-margin
	case TopRight:
		left, top = width-plateSize-margin, margin
	case TopLeft:
		left, top = margin, margin
	default:
		left, top = width-plateSize-margin, height-plateSize-margin
	}
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return left, top
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG)
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	default:
		return imaging.Encode(w, img, imaging.PNG)
	}
}
