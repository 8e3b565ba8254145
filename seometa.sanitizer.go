package seometa

import (
	"github.com/itsatony/go-seometa/internal"
	"go.uber.org/zap"
)

// Sanitizer strips tags that are not allow-listed from raw markup.
// Implementations must be safe for concurrent use.
type Sanitizer interface {
	// Sanitize returns markup unchanged when validTags is nil. Otherwise every
	// element whose name is not in validTags is removed while its text and
	// surviving nested elements are kept. Matching is case-insensitive.
	Sanitize(markup string, validTags []string) (string, error)
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(markup string, validTags []string) (string, error)

// Sanitize implements Sanitizer.
func (f SanitizerFunc) Sanitize(markup string, validTags []string) (string, error) {
	return f(markup, validTags)
}

// HTMLSanitizer is the default Sanitizer, built on the golang.org/x/net/html
// tokenizer. It classifies top-level tags by name only; it does not validate
// document structure.
type HTMLSanitizer struct {
	logger *zap.Logger
}

// NewHTMLSanitizer creates an HTMLSanitizer. A nil logger disables logging.
func NewHTMLSanitizer(logger *zap.Logger) *HTMLSanitizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLSanitizer{logger: logger}
}

// DefaultSanitizer returns the sanitizer used when none is configured.
func DefaultSanitizer() Sanitizer {
	return NewHTMLSanitizer(nil)
}

// Sanitize implements Sanitizer.
func (s *HTMLSanitizer) Sanitize(markup string, validTags []string) (string, error) {
	if validTags == nil {
		return markup, nil
	}
	return internal.SanitizeTags(markup, internal.NewTagSet(validTags...), s.logger)
}
