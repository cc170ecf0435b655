package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxDimension bounds width and height.
const MaxDimension = 16384

// BytesPerPixel is the size of one RGB pixel.
const BytesPerPixel = 3

var (
	// ErrInvalidSize is returned for a non-positive or oversized image.
	ErrInvalidSize = errors.New("raster: invalid image size")

	// ErrOutOfRange is returned for pixel coordinates outside the image.
	ErrOutOfRange = errors.New("raster: pixel out of range")
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns a Color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Image is an RGB raster.
type Image struct {
	width  int
	height int
	pix    []byte
}

// New creates a black image.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

// FromPix creates an image that takes ownership of pix.
// len(pix) must equal width*height*BytesPerPixel.
func FromPix(width, height int, pix []byte) (*Image, error) {
	img, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != len(img.pix) {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidSize, len(pix), len(img.pix))
	}
	img.pix = pix
	return img, nil
}

// Bounds returns width and height.
func (m *Image) Bounds() (width, height int) { return m.width, m.height }

// Width returns the number of pixel columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of pixel rows.
func (m *Image) Height() int { return m.height }

func (m *Image) offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, x, y, m.width, m.height)
	}
	return (y*m.width + x) * BytesPerPixel, nil
}

// At returns the pixel at (x, y).
func (m *Image) At(x, y int) (Color, error) {
	off, err := m.offset(x, y)
	if err != nil {
		return Color{}, err
	}
	return Color{R: m.pix[off], G: m.pix[off+1], B: m.pix[off+2]}, nil
}

// Set writes the pixel at (x, y).
func (m *Image) Set(x, y int, c Color) error {
	off, err := m.offset(x, y)
	if err != nil {
		return err
	}
	m.pix[off], m.pix[off+1], m.pix[off+2] = c.R, c.G, c.B
	return nil
}

// Fill paints every pixel with c.
func (m *Image) Fill(c Color) {
	for off := 0; off < len(m.pix); off += BytesPerPixel {
		m.pix[off], m.pix[off+1], m.pix[off+2] = c.R, c.G, c.B
	}
}

// Pix returns a copy of the raw pixel bytes.
func (m *Image) Pix() []byte {
	out := make([]byte, len(m.pix))
	copy(out, m.pix)
	return out
}

// Row returns row y without copying. The slice is valid until the next write.
func (m *Image) Row(y int) []byte {
	start := y * m.width * BytesPerPixel
	return m.pix[start : start+m.width*BytesPerPixel]
}

// Clone returns an independent copy.
func (m *Image) Clone() *Image {
	return &Image{width: m.width, height: m.height, pix: m.Pix()}
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Std returns an image.Image view of m.
func (m *Image) Std() image.Image { return stdImage{m} }

type stdImage struct{ m *Image }

func (s stdImage) ColorModel() color.Model { return color.RGBAModel }

func (s stdImage) Bounds() image.Rectangle { return image.Rect(0, 0, s.m.width, s.m.height) }

func (s stdImage) At(x, y int) color.Color {
	c, err := s.m.At(x, y)
	if err != nil {
		return color.RGBA{}
	}
	return c
}
