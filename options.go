package spitfire

import (
	"log/slog"

	"github.com/wandadars/spitfire/codec"
	"github.com/wandadars/spitfire/persistence"
)

type options struct {
	codec            codec.Codec
	compression      persistence.Compression
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
}

// Option configures a Repository.
type Option func(*options)

// WithCodec configures the codec used for extra attributes in new blobs.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression of new blobs.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency bounds the number of parallel loads in LoadAll.
// Values <= 0 mean one load per requested library.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &spitfire.BasicMetricsCollector{}
//	repo := spitfire.NewRepository(store, spitfire.WithMetricsCollector(metrics))
//	// ... use repo ...
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, Avg latency: %dns\n", stats.SaveCount, stats.SaveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := spitfire.NewJSONLogger(slog.LevelInfo)
//	repo := spitfire.NewRepository(store, spitfire.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      persistence.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) persistenceOptions() []persistence.Option {
	return []persistence.Option{
		persistence.WithCodec(o.codec),
		persistence.WithCompression(o.compression),
	}
}
