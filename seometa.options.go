package seometa

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Placement selects which slots a render pass covers.
type Placement int

const (
	// PlacementAll renders every slot.
	PlacementAll Placement = iota
	// PlacementHead renders only head-only slots.
	PlacementHead
	// PlacementBody renders only slots that are not head-only.
	PlacementBody
)

// String returns the string representation of the placement
func (p Placement) String() string {
	switch p {
	case PlacementHead:
		return PlacementNameHead
	case PlacementBody:
		return PlacementNameBody
	default:
		return PlacementNameAll
	}
}

// ParsePlacement parses a placement name (case-insensitive).
func ParsePlacement(name string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PlacementNameHead:
		return PlacementHead, nil
	case PlacementNameBody:
		return PlacementBody, nil
	case PlacementNameAll, "":
		return PlacementAll, nil
	default:
		return PlacementAll, NewConfigurationError(ErrMsgInvalidPlacement, "", name)
	}
}

// ErrorStrategy defines how RenderAll treats a slot that fails to resolve or render
type ErrorStrategy int

const (
	// ErrorStrategyPropagate stops rendering and returns the error
	ErrorStrategyPropagate ErrorStrategy = iota
	// ErrorStrategySkip omits the slot, logs a warning and records the failure on the Output
	ErrorStrategySkip
)

// String returns the string representation of the error strategy
func (s ErrorStrategy) String() string {
	if s == ErrorStrategySkip {
		return ErrorStrategyNameSkip
	}
	return ErrorStrategyNamePropagate
}

// ParseErrorStrategy parses an error strategy name (case-insensitive).
func ParseErrorStrategy(name string) (ErrorStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ErrorStrategyNamePropagate, "":
		return ErrorStrategyPropagate, nil
	case ErrorStrategyNameSkip:
		return ErrorStrategySkip, nil
	default:
		return ErrorStrategyPropagate, NewConfigurationError(ErrMsgInvalidErrorStrategy, "", name)
	}
}

// Option is a functional option for configuring the Renderer.
type Option func(*rendererConfig)

// rendererConfig holds the internal configuration for a Renderer.
type rendererConfig struct {
	errorStrategy ErrorStrategy
	sanitizer     Sanitizer
	cache         RenderCache
	cacheTTL      time.Duration
	metrics       *Metrics
	separator     string
	logger        *zap.Logger
}

// defaultRendererConfig returns the default renderer configuration.
func defaultRendererConfig() *rendererConfig {
	return &rendererConfig{
		errorStrategy: ErrorStrategyPropagate,
		sanitizer:     DefaultSanitizer(),
		cacheTTL:      DefaultRenderCacheTTL,
		separator:     FragmentSeparator,
	}
}

// WithErrorStrategy sets how per-slot failures are handled.
// Default: ErrorStrategyPropagate
func WithErrorStrategy(strategy ErrorStrategy) Option {
	return func(c *rendererConfig) {
		c.errorStrategy = strategy
	}
}

// WithSanitizer sets the sanitizer used by Render for slots rendered outside
// a schema. Schema renders use the schema's own sanitizer.
// Default: DefaultSanitizer()
func WithSanitizer(s Sanitizer) Option {
	return func(c *rendererConfig) {
		c.sanitizer = s
	}
}

// WithRenderCache enables RenderPage caching. A zero ttl keeps the default.
// Default: nil (no caching)
func WithRenderCache(cache RenderCache, ttl time.Duration) Option {
	return func(c *rendererConfig) {
		c.cache = cache
		if ttl != 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithMetrics enables Prometheus counters.
// Default: nil (no metrics)
func WithMetrics(m *Metrics) Option {
	return func(c *rendererConfig) {
		c.metrics = m
	}
}

// WithSeparator sets the string placed between fragments. An empty
// separator keeps the default.
// Default: "\n"
func WithSeparator(sep string) Option {
	return func(c *rendererConfig) {
		c.separator = sep
	}
}

// WithLogger sets the logger for the renderer.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *rendererConfig) {
		c.logger = logger
	}
}
