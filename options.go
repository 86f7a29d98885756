package gridview

import (
	"github.com/hupe1980/gridview/codec"
	"github.com/hupe1980/gridview/tokenize"
	"github.com/hupe1980/gridview/window"
)

type options struct {
	logger            *Logger
	metricsCollector  MetricsCollector
	tokenizer         tokenize.Tokenizer
	extraSearchFields []string
	measurer          window.Measurer
	windowOptFns      []func(*window.Options)
	codec             codec.Codec
}

// Option configures table construction.
type Option func(*options)

// WithLogger configures structured logging. Pass nil to keep the default
// text logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithTokenizer configures the tokenizer used for data load and query
// parsing. If nil is passed, tokenize.Default is used.
func WithTokenizer(t tokenize.Tokenizer) Option {
	return func(o *options) {
		if t == nil {
			t = tokenize.Default{}
		}
		o.tokenizer = t
	}
}

// WithExtraSearchFields adds fields to text search beyond the searchable
// columns. Extra fields are matched by whole-query substring, never
// tokenized.
func WithExtraSearchFields(fields ...string) Option {
	return func(o *options) {
		o.extraSearchFields = append(o.extraSearchFields, fields...)
	}
}

// WithMeasurer connects the render adapter's row-height measurement and
// enables virtual windowing.
//
// Example:
//
//	t, _ := gridview.New(cols,
//	    gridview.WithMeasurer(adapter, func(o *window.Options) {
//	        o.Padding = 4
//	    }),
//	)
func WithMeasurer(m window.Measurer, optFns ...func(*window.Options)) Option {
	return func(o *options) {
		o.measurer = m
		o.windowOptFns = optFns
	}
}

// WithCodec configures the codec used for snapshot payloads.
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
