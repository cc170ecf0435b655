// Package codec encodes and decodes raster images as PPM (portable pixmap).
//
// Two variants are built in: P6 (binary, the default) and P3 (plain ASCII).
// Decode accepts either variant, header comments, and any max value from 1
// to 255. Samples with a max value below 255 are rescaled to 0..255.
package codec

import (
	"errors"
	"io"

	"github.com/hupe1980/hvec/raster"
)

var (
	// ErrBadMagic is returned when the stream does not start with P3 or P6.
	ErrBadMagic = errors.New("ppm: bad magic number")

	// ErrBadHeader is returned for a malformed width, height, or max value.
	ErrBadHeader = errors.New("ppm: bad header")

	// ErrShortData is returned when the pixel data ends early.
	ErrShortData = errors.New("ppm: short pixel data")
)

// Codec encodes/decodes images.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(w io.Writer, img *raster.Image) error
	Decode(r io.Reader) (*raster.Image, error)
	// Name returns the stable codec name.
	Name() string
	// Extension returns the file extension including the dot.
	Extension() string
}

// Default is the codec used when none is configured.
var Default Codec = P6{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "p6", "ppm":
		return P6{}, true
	case "p3":
		return P3{}, true
	default:
		return nil, false
	}
}

// Names lists the names ByName accepts.
var Names = []string{"p3", "p6", "ppm"}
