package internal

// Log message constants
const (
	LogMsgSanitizeStart    = "sanitizing raw markup"
	LogMsgSanitizeComplete = "sanitize complete"
	LogMsgTagDropped       = "tag dropped by allow-list"
)

// Log field constants
const (
	LogFieldTag       = "tag"
	LogFieldAllowed   = "allowed"
	LogFieldInputLen  = "input_len"
	LogFieldOutputLen = "output_len"
)

// Error message constants
const (
	ErrMsgTokenizeFailed    = "markup tokenization failed"
	ErrMsgAttributeNotFound = "attribute not found"
	ErrMsgNotInvokable      = "attribute is not invokable"
	ErrMsgUnsupportedFunc   = "unsupported function signature"
	ErrMsgNilTarget         = "lookup target is nil"
)

// Error format strings
const (
	ErrFmtNameMessage = "%s: %s"
)

// Separator used when converting snake_case attribute names to Go identifiers
const (
	NameSeparator = "_"
	StringEmpty   = ""
)
