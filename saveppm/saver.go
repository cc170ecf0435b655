package saveppm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/hvec/blobstore"
	"github.com/hupe1980/hvec/codec"
	"github.com/hupe1980/hvec/compress"
	"github.com/hupe1980/hvec/raster"
)

// Saver persists an image under a name.
type Saver interface {
	Save(ctx context.Context, name string, img *raster.Image) error
}

// SaverFunc adapts an ordinary function to a Saver.
type SaverFunc func(ctx context.Context, name string, img *raster.Image) error

// Save calls f(ctx, name, img).
func (f SaverFunc) Save(ctx context.Context, name string, img *raster.Image) error {
	return f(ctx, name, img)
}

// Store encodes images as PPM and writes them to a blob store.
// It is safe for concurrent use.
type Store struct {
	blobs   blobstore.BlobStore
	opts    options
	limiter *rate.Limiter
	sem     *semaphore.Weighted
}

var _ Saver = (*Store)(nil)

// New creates a Store writing to blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Store {
	s := &Store{
		blobs: blobs,
		opts:  applyOptions(optFns),
	}
	if s.opts.bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(s.opts.bytesPerSec), int(s.opts.bytesPerSec))
	}
	if s.opts.maxInFlight > 0 {
		s.sem = semaphore.NewWeighted(s.opts.maxInFlight)
	}
	return s
}

// ObjectName returns the blob name Save uses for name.
//
// The codec extension is appended when name has no extension, and the
// compression extension is appended when it is missing. The result always
// maps back to the configured compression through compress.Detect, so Load
// can read every name Save writes.
func (s *Store) ObjectName(name string) string {
	comp := s.opts.compression
	if comp != compress.None && strings.HasSuffix(name, comp.Extension()) {
		return name
	}
	if path.Ext(name) == "" || (comp == compress.None && compress.Detect(name) != compress.None) {
		name += s.opts.codec.Extension()
	}
	return name + comp.Extension()
}

// Save encodes img and stores it under ObjectName(name).
// A failed save leaves no partial blob behind.
func (s *Store) Save(ctx context.Context, name string, img *raster.Image) (err error) {
	full := s.ObjectName(name)
	if img == nil {
		return &SaveError{Op: "save", Name: full, Err: ErrNilImage}
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return &SaveError{Op: "save", Name: full, Err: err}
		}
		defer s.sem.Release(1)
	}

	start := time.Now()
	var written int64
	defer func() {
		d := time.Since(start)
		s.opts.metricsCollector.RecordSave(written, d, err)
		s.opts.logger.LogSave(ctx, full, written, d, err)
	}()

	written, err = s.write(ctx, full, img)
	if err != nil {
		return &SaveError{Op: "save", Name: full, Err: err}
	}
	return nil
}

func (s *Store) write(ctx context.Context, name string, img *raster.Image) (int64, error) {
	wb, err := s.blobs.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: wb}
	var dst io.Writer = cw
	if s.limiter != nil {
		dst = &limitedWriter{ctx: ctx, w: cw, limiter: s.limiter}
	}

	if err := s.encode(dst, img); err != nil {
		return 0, errors.Join(err, wb.Abort())
	}
	if err := wb.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

func (s *Store) encode(dst io.Writer, img *raster.Image) error {
	zw, err := compress.NewWriter(dst, s.opts.compression, s.opts.compressionLevel)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(zw)
	if err := s.opts.codec.Encode(bw, img); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode %s: %w", s.opts.codec.Name(), err)
	}
	if err := bw.Flush(); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads and decodes the image stored under name.
// The compression is detected from the name's extension.
func (s *Store) Load(ctx context.Context, name string) (img *raster.Image, err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordLoad(time.Since(start), err)
		s.opts.logger.LogLoad(ctx, name, err)
	}()

	img, err = s.read(ctx, name)
	if err != nil {
		return nil, &SaveError{Op: "load", Name: name, Err: err}
	}
	return img, nil
}

func (s *Store) read(ctx context.Context, name string) (*raster.Image, error) {
	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	zr, err := compress.NewReader(rc, compress.Detect(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	return codec.Decode(bufio.NewReader(zr))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// limitedWriter waits on the limiter before each chunk. Chunks never exceed
// the limiter's burst so WaitN can always be satisfied.
type limitedWriter struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	var written int
	burst := l.limiter.Burst()
	for len(p) > 0 {
		n := min(len(p), burst)
		if err := l.limiter.WaitN(l.ctx, n); err != nil {
			return written, err
		}
		m, err := l.w.Write(p[:n])
		written += m
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
