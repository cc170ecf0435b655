package saveppm

import (
	"log/slog"

	"github.com/hupe1980/hvec/codec"
	"github.com/hupe1980/hvec/compress"
)

type options struct {
	codec            codec.Codec
	compression      compress.Type
	compressionLevel int
	logger           *Logger
	metricsCollector MetricsCollector
	bytesPerSec      int64
	maxInFlight      int64
}

// Option configures a Store.
type Option func(*options)

// WithCodec configures the PPM variant. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression compresses saved images. level 0 selects the default level.
//
// Names without the matching extension get it appended (".zst" or ".lz4").
func WithCompression(t compress.Type, level int) Option {
	return func(o *options) {
		o.compression = t
		o.compressionLevel = level
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector. Pass nil to disable metrics.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithRateLimit caps the upload throughput of each Store in bytes per second.
// Zero or negative disables the limit.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.bytesPerSec = bytesPerSec
	}
}

// WithMaxInFlight bounds the number of concurrent saves. Zero or negative means unbounded.
func WithMaxInFlight(n int64) Option {
	return func(o *options) {
		o.maxInFlight = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      compress.None,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
