package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/spakin/netpbm"

	"github.com/hupe1980/hvec/raster"
)

const (
	maxValue = 255

	// plainLineLimit is the longest line the PPM format allows for P3.
	plainLineLimit = 70
)

// P6 is the binary PPM codec.
type P6 struct{}

// Encode writes img as binary PPM.
func (P6) Encode(w io.Writer, img *raster.Image) error { return encode(w, img, false) }

// Decode reads a P3 or P6 image.
func (P6) Decode(r io.Reader) (*raster.Image, error) { return Decode(r) }

// Name returns "p6".
func (P6) Name() string { return "p6" }

// Extension returns ".ppm".
func (P6) Extension() string { return ".ppm" }

// P3 is the plain (ASCII) PPM codec.
type P3 struct{}

// Encode writes img as plain PPM with lines of at most 70 characters.
func (P3) Encode(w io.Writer, img *raster.Image) error { return encode(w, img, true) }

// Decode reads a P3 or P6 image.
func (P3) Decode(r io.Reader) (*raster.Image, error) { return Decode(r) }

// Name returns "p3".
func (P3) Name() string { return "p3" }

// Extension returns ".ppm".
func (P3) Extension() string { return ".ppm" }

func encode(w io.Writer, img *raster.Image, plain bool) error {
	bw := bufio.NewWriter(w)
	err := netpbm.Encode(bw, img.Std(), &netpbm.EncodeOptions{
		Format:   netpbm.PPM,
		MaxValue: maxValue,
		Plain:    plain,
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// header is the validated PPM header.
type header struct {
	magic         string
	width, height int
	maxVal        int
}

func (h header) String() string {
	return fmt.Sprintf("%s\n%d %d\n%d\n", h.magic, h.width, h.height, h.maxVal)
}

// Decode reads a P3 or P6 image from r.
//
// The header is validated before any pixel buffer is allocated, and the
// pixel data is buffered only as far as r actually provides it.
func Decode(r io.Reader) (*raster.Image, error) {
	br := bufio.NewReader(r)

	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	samples := int64(h.width) * int64(h.height) * raster.BytesPerPixel
	var body []byte
	if h.magic == "P6" {
		body, err = io.ReadAll(io.LimitReader(br, samples))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortData, err)
		}
		if int64(len(body)) < samples {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortData, len(body), samples)
		}
		for _, v := range body {
			if int(v) > h.maxVal {
				return nil, fmt.Errorf("%w: sample %d exceeds max value %d", ErrShortData, v, h.maxVal)
			}
		}
	} else {
		body, err = io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortData, err)
		}
		// Every plain sample takes at least one digit and one separator.
		if int64(len(body)) < 2*samples-1 {
			return nil, fmt.Errorf("%w: plain data too short for %dx%d", ErrShortData, h.width, h.height)
		}
	}

	src := io.MultiReader(strings.NewReader(h.String()), bytes.NewReader(body))
	decoded, err := netpbm.Decode(src, &netpbm.DecodeOptions{Target: netpbm.PPM, Exact: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortData, err)
	}
	return fromImage(decoded, h.width, h.height)
}

// fromImage converts a decoded image to 8-bit RGB. Samples with a max value
// below 255 come back scaled to the full 16-bit range.
func fromImage(src image.Image, width, height int) (*raster.Image, error) {
	img, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	for y := range height {
		for x := range width {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if err := img.Set(x, y, raster.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))); err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

func readHeader(br *bufio.Reader) (header, error) {
	var h header
	magic, err := readToken(br)
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrBadMagic, err)
	}
	if magic != "P3" && magic != "P6" {
		return h, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}
	h.magic = magic

	if h.width, err = readHeaderInt(br, "width", raster.MaxDimension); err != nil {
		return h, err
	}
	if h.height, err = readHeaderInt(br, "height", raster.MaxDimension); err != nil {
		return h, err
	}
	if h.maxVal, err = readHeaderInt(br, "max value", maxValue); err != nil {
		return h, err
	}
	return h, nil
}

func readHeaderInt(br *bufio.Reader, field string, limit int) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBadHeader, field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 || v > limit {
		return 0, fmt.Errorf("%w: %s %q", ErrBadHeader, field, tok)
	}
	return v, nil
}

// readToken returns the next whitespace-delimited token, skipping comments.
// The single whitespace byte that ends a token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(tok) > 0 {
					return string(tok), nil
				}
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
