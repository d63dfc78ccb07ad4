// Package render rasterizes single PDF pages into embeddable PNG data URLs
// using go-fitz (MuPDF).
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

// DefaultZoom is the rasterization magnification. 3.5-4.0 keeps small table
// text legible for the vision model.
const DefaultZoom = 3.5

// baseDPI is the PDF user-space resolution; zoom multiplies it.
const baseDPI = 72

// Renderer converts single PDF pages into PNG data URLs.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// PageDataURL renders the zero-based pageIndex of the PDF at path into a PNG
// at zoom times the base resolution and returns it as a base64 data URL.
// Identical inputs against an unmodified file produce identical output.
func (r *Renderer) PageDataURL(path string, pageIndex int, zoom float64) (string, error) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("pdf not found: %s: %w", path, err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return "", fmt.Errorf("pdf %s has %d page(s), page index %d is out of range", path, doc.NumPage(), pageIndex)
	}

	img, err := doc.ImageDPI(pageIndex, zoom*baseDPI)
	if err != nil {
		return "", fmt.Errorf("render page %d of %s: %w", pageIndex, path, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page %d of %s as png: %w", pageIndex, path, err)
	}
	return PNGDataURL(buf.Bytes()), nil
}

// PNGDataURL wraps raw PNG bytes into a data URL suitable for an
// input_image message part.
func PNGDataURL(b []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)
}
