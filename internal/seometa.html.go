package internal

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"go.uber.org/zap"
)

// TagSet is a set of lower-cased tag names.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet, lower-casing and trimming every name.
// Blank names are ignored.
func NewTagSet(names ...string) TagSet {
	set := make(TagSet, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == StringEmpty {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set (case-insensitive).
func (s TagSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// rawTextTags are the elements whose content the tokenizer reads as raw
// text or RCDATA rather than markup.
var rawTextTags = NewTagSet("iframe", "noembed", "noframes", "noscript", "plaintext",
	"script", "style", "textarea", "title", "xmp")

// inertTags keep their content as escaped text when the element is dropped.
var inertTags = NewTagSet("script")

// SanitizeTags walks markup as a tag soup and drops every start, end or
// self-closing tag whose name is not in allowed. Text is kept (escaped for
// safe embedding), surviving tags keep their attributes. Comments and
// doctypes are dropped.
//
// The body of a surviving raw-text element such as script or style is
// written verbatim. The body of a dropped one is read as markup so nested
// allowed elements survive, except for script, whose body stays escaped text.
func SanitizeTags(markup string, allowed TagSet, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgSanitizeStart, zap.Int(LogFieldInputLen, len(markup)))

	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup))

	// rawOpen is set while the body of a surviving raw-text element is read.
	rawOpen := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", &SanitizeError{Message: ErrMsgTokenizeFailed, Cause: err}
			}
			out := b.String()
			logger.Debug(LogMsgSanitizeComplete, zap.Int(LogFieldOutputLen, len(out)))
			return out, nil
		case html.TextToken:
			if rawOpen {
				b.Write(z.Raw())
				continue
			}
			b.WriteString(html.EscapeString(string(z.Text())))
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			rawOpen = false
			keep := allowed.Has(tok.Data)
			if tt != html.EndTagToken && rawTextTags.Has(tok.Data) {
				switch {
				case keep:
					rawOpen = true
				case !inertTags.Has(tok.Data):
					z.NextIsNotRawText()
				}
			}
			if keep {
				b.WriteString(tok.String())
				continue
			}
			logger.Debug(LogMsgTagDropped, zap.String(LogFieldTag, tok.Data))
		}
	}
}

// EscapeText escapes a value for use as an HTML text node.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// EscapeAttr escapes a value for use inside a double-quoted attribute.
// EscapeText already encodes quotes and ampersands, so it serves both.
func EscapeAttr(s string) string {
	return EscapeText(s)
}

// SanitizeError reports a failure while tokenizing raw markup.
type SanitizeError struct {
	Message string
	Cause   error
}

// Error implements the error interface
func (e *SanitizeError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying tokenizer error
func (e *SanitizeError) Unwrap() error {
	return e.Cause
}
