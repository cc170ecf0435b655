// Package compress wraps image streams with optional zstd or LZ4 compression.
//
// Writers returned by NewWriter flush the compressor on Close but never close
// the underlying writer.
package compress

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type selects the compression algorithm.
type Type uint8

const (
	// None stores the stream as is.
	None Type = iota
	// Zstd uses zstd frames (better ratio).
	Zstd
	// LZ4 uses LZ4 frames (faster).
	LZ4
)

// DefaultLevel selects each algorithm's default level.
const DefaultLevel = 0

// ErrUnknownCompression is returned for an unknown compression name or type.
var ErrUnknownCompression = errors.New("unknown compression")

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Extension returns the file suffix for t, including the dot.
func (t Type) Extension() string {
	switch t {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseType parses "none", "zstd", or "lz4". The empty string is None.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Detect returns the compression implied by the file extension of name.
func Detect(name string) Type {
	switch {
	case strings.HasSuffix(name, Zstd.Extension()):
		return Zstd
	case strings.HasSuffix(name, LZ4.Extension()):
		return LZ4
	default:
		return None
	}
}

var zstdEncoderPool sync.Pool

func getZstdEncoder(w io.Writer) (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		enc := v.(*zstd.Encoder)
		enc.Reset(w)
		return enc, nil
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

type pooledZstdWriter struct {
	*zstd.Encoder
}

func (p pooledZstdWriter) Close() error {
	err := p.Encoder.Close()
	if err == nil {
		zstdEncoderPool.Put(p.Encoder)
	}
	return err
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with compressor t. level 0 selects the default level;
// zstd takes zstd levels (1-22), LZ4 takes 1-9.
func NewWriter(w io.Writer, t Type, level int) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		if level == DefaultLevel {
			enc, err := getZstdEncoder(w)
			if err != nil {
				return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
			}
			return pooledZstdWriter{enc}, nil
		}
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	case LZ4:
		zw := lz4.NewWriter(w)
		if level != DefaultLevel {
			if level < 1 || level > 9 {
				return nil, fmt.Errorf("lz4 level %d out of range [1, 9]", level)
			}
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level-1])); err != nil {
				return nil, fmt.Errorf("failed to configure lz4 writer: %w", err)
			}
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, t)
	}
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z zstdReadCloser) Close() error {
	z.dec.Close()
	return nil
}

// NewReader wraps r with the decompressor for t.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return zstdReadCloser{dec: dec}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, t)
	}
}
