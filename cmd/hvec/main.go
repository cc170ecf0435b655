// Command hvec builds two homogeneous vectors of different element types,
// prints the first one, and optionally renders their combination as a PPM
// image.
//
// Usage:
//
//	hvec [-print-result] [-op cross] [-out name] [-store local|s3|minio] ...
//
// With no flags it prints "1 2 3 0".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/hupe1980/hvec"
	"github.com/hupe1980/hvec/blobstore"
	"github.com/hupe1980/hvec/blobstore/minio"
	"github.com/hupe1980/hvec/blobstore/s3"
	"github.com/hupe1980/hvec/codec"
	"github.com/hupe1980/hvec/compress"
	"github.com/hupe1980/hvec/raster"
	"github.com/hupe1980/hvec/saveppm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type config struct {
	op          string
	printResult bool
	out         string
	store       string
	dir         string
	bucket      string
	prefix      string
	endpoint    string
	tls         bool
	format      string
	compression string
	size        string
	logLevel    string
	logJSON     bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("hvec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.op, "op", "cross", "combine op: "+strings.Join(hvec.OpNames, ", "))
	fs.BoolVar(&cfg.printResult, "print-result", false, "print the combined vector on a second line")
	fs.StringVar(&cfg.out, "out", "", "image name to save (empty disables rendering)")
	fs.StringVar(&cfg.store, "store", "local", "blob store: local, s3, minio")
	fs.StringVar(&cfg.dir, "dir", ".", "output directory for the local store")
	fs.StringVar(&cfg.bucket, "bucket", os.Getenv("HVEC_BUCKET"), "bucket for s3 and minio")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix for s3 and minio")
	fs.StringVar(&cfg.endpoint, "endpoint", os.Getenv("HVEC_ENDPOINT"), "custom s3 endpoint or minio host:port")
	fs.BoolVar(&cfg.tls, "tls", false, "use TLS for minio")
	fs.StringVar(&cfg.format, "format", "p6", "ppm variant: "+strings.Join(codec.Names, ", "))
	fs.StringVar(&cfg.compression, "compress", "none", "compression: none, zstd, lz4")
	fs.StringVar(&cfg.size, "size", "256x64", "image size as WIDTHxHEIGHT")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "log as JSON")
	err := fs.Parse(args)
	return cfg, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "hvec:", err)
		return 1
	}

	op, err := hvec.OpByName[float64](cfg.op)
	if err != nil {
		logger.Error("invalid op", "op", cfg.op, "error", err)
		return 1
	}

	v1 := hvec.MustNew[int](1, 2, 3)
	v2 := hvec.MustNew[float32](4, 5, 6)

	v3, err := hvec.Combine[float64](v1, v2, op)
	if err != nil {
		logger.Error("combine failed", "error", err)
		return 1
	}

	fmt.Fprintln(stdout, v1)
	if cfg.printResult {
		fmt.Fprintln(stdout, v3)
	}

	if cfg.out == "" {
		return 0
	}
	if err := render(ctx, cfg, logger, hvec.Convert[float64](v1), v3); err != nil {
		logger.Error("render failed", "out", cfg.out, "error", err)
		return 1
	}
	return 0
}

func newLogger(cfg config, w io.Writer) (*saveppm.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.logJSON {
		return saveppm.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return saveppm.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func render(ctx context.Context, cfg config, logger *saveppm.Logger, from, to hvec.Vec[float64]) error {
	width, height, err := parseSize(cfg.size)
	if err != nil {
		return err
	}
	c, ok := codec.ByName(cfg.format)
	if !ok {
		return fmt.Errorf("unknown format %q", cfg.format)
	}
	comp, err := compress.ParseType(cfg.compression)
	if err != nil {
		return err
	}

	img, err := raster.New(width, height)
	if err != nil {
		return err
	}
	raster.ShadeGradient(img, hvec.Normalize(from), hvec.Normalize(to))

	blobs, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	saver := saveppm.New(blobs,
		saveppm.WithCodec(c),
		saveppm.WithCompression(comp, compress.DefaultLevel),
		saveppm.WithLogger(logger.WithStore(cfg.store)),
	)
	return saver.Save(ctx, cfg.out, img)
}

// parseSize parses "WIDTHxHEIGHT". Bounds are checked by raster.New.
func parseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	if width, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if height, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return width, height, nil
}

func openStore(ctx context.Context, cfg config) (blobstore.BlobStore, error) {
	switch cfg.store {
	case "local":
		return blobstore.NewLocalStore(cfg.dir), nil
	case "s3":
		if cfg.bucket == "" {
			return nil, errors.New("s3 store requires -bucket or HVEC_BUCKET")
		}
		return s3.New(ctx, cfg.bucket, s3.WithPrefix(cfg.prefix), s3.WithEndpoint(cfg.endpoint))
	case "minio":
		if cfg.bucket == "" || cfg.endpoint == "" {
			return nil, errors.New("minio store requires -bucket and -endpoint (or HVEC_BUCKET and HVEC_ENDPOINT)")
		}
		client, err := minio.Dial(cfg.endpoint, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), cfg.tls)
		if err != nil {
			return nil, err
		}
		store := minio.NewStore(client, cfg.bucket, cfg.prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.bucket, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.store)
	}
}
