package seometa

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - every error message is a constant
const (
	// Configuration errors
	ErrMsgConfiguration        = "invalid metadata configuration"
	ErrMsgDuplicateSlot        = "slot name already registered"
	ErrMsgNilSlot              = "slot cannot be nil"
	ErrMsgEmptySlotName        = "slot name cannot be empty"
	ErrMsgInvalidSlotName      = "slot name is not a valid identifier"
	ErrMsgReservedSlotName     = "slot name is reserved"
	ErrMsgInvalidKind          = "unknown slot kind"
	ErrMsgInvalidDisplayName   = "display name is not a valid tag name"
	ErrMsgValidTagsNotRaw      = "valid tags can only be set on raw slots"
	ErrMsgMaxLengthUnbounded   = "max length conflicts with unbounded storage"
	ErrMsgNegativeMaxLength    = "max length must be positive"
	ErrMsgInvalidDefault       = "invalid default specification"
	ErrMsgGroupClash           = "group name clashes with slot name"
	ErrMsgUnknownSlotRef       = "default refers to an unknown slot"
	ErrMsgSelfSlotRef          = "default refers to its own slot"
	ErrMsgEmptySchemaName      = "schema name cannot be empty"
	ErrMsgUnknownCallable      = "no callable registered under that name"
	ErrMsgInvalidDeclaration   = "schema declaration could not be parsed"
	ErrMsgAmbiguousDefault     = "default must set exactly one of literal, field, method, callable, slot"
	ErrMsgInvalidStorage       = "unknown storage kind"
	ErrMsgInvalidPlacement     = "unknown placement"
	ErrMsgInvalidErrorStrategy = "unknown error strategy"
	ErrMsgNegativeCacheTTL     = "cache ttl cannot be negative"

	// Sanitizer errors
	ErrMsgSanitizerUnavailable = "tag allow-list requested but no sanitizer is available"
	ErrMsgSanitizeFailed       = "raw markup sanitizing failed"

	// Resolution errors
	ErrMsgResolution        = "slot value resolution failed"
	ErrMsgAttributeNotFound = "attribute not found on record"
	ErrMsgNilRecord         = "reference default needs a record"
	ErrMsgCallableFailed    = "default callable failed"
	ErrMsgInvokeFailed      = "attribute invocation failed"
	ErrMsgSlotRefCycle      = "slot reference cycle"
	ErrMsgNoSchema          = "slot reference needs a schema"

	// Validation errors
	ErrMsgInvalidValue     = "invalid stored value"
	ErrMsgValueTooLong     = "value exceeds max length"
	ErrMsgUnknownValue     = "value given for an unknown slot"
	ErrMsgValueNotEditable = "value given for a slot that is not editable"

	// Storage errors
	ErrMsgRecordNotFound           = "metadata record not found"
	ErrMsgStoreClosed              = "record store is closed"
	ErrMsgStoreDriverNotFound      = "record store driver not found"
	ErrMsgNilStoreDriver           = "record store driver cannot be nil"
	ErrMsgStoreDriverRegistered    = "record store driver already registered"
	ErrMsgInvalidRecord            = "record needs a schema and a path"
	ErrMsgPostgresEmptyConnString  = "postgres connection string cannot be empty"
	ErrMsgPostgresConnectionFailed = "postgres connection failed"
	ErrMsgPostgresQueryFailed      = "postgres query failed"
	ErrMsgPostgresMigrationFailed  = "postgres migration failed"
	ErrMsgEncodeFailed             = "record encoding failed"
	ErrMsgDecodeFailed             = "record decoding failed"

	// Cache errors
	ErrMsgCacheConnectionFailed = "render cache connection failed"
	ErrMsgCacheOperationFailed  = "render cache operation failed"
)

// Error code constants for categorization
const (
	ErrCodeConfiguration = "SEOMETA_CONFIGURATION"
	ErrCodeSanitizer     = "SEOMETA_SANITIZER"
	ErrCodeResolution    = "SEOMETA_RESOLUTION"
	ErrCodeValidation    = "SEOMETA_VALIDATION"
	ErrCodeStorage       = "SEOMETA_STORAGE"
	ErrCodeCache         = "SEOMETA_CACHE"
)

// Sentinel errors. Every error returned by this package wraps one of these so
// callers can branch with errors.Is.
var (
	// ErrConfiguration marks declaration-time mistakes. Never recovered.
	ErrConfiguration = errors.New(ErrMsgConfiguration)

	// ErrDuplicateSlot is a configuration error raised by Schema.Register.
	ErrDuplicateSlot = fmt.Errorf("%w: %s", ErrConfiguration, ErrMsgDuplicateSlot)

	// ErrSanitizerUnavailable is a configuration error: an allow-list was
	// requested without a sanitizer.
	ErrSanitizerUnavailable = fmt.Errorf("%w: %s", ErrConfiguration, ErrMsgSanitizerUnavailable)

	// ErrResolution marks per-record render-time failures.
	ErrResolution = errors.New(ErrMsgResolution)

	// ErrSanitize marks a failure of the sanitizer itself at render time.
	ErrSanitize = errors.New(ErrMsgSanitizeFailed)

	// ErrInvalidValue marks stored values rejected by Schema.ValidateValues.
	ErrInvalidValue = errors.New(ErrMsgInvalidValue)

	// ErrValueTooLong is returned by SlotSpec.CheckLength. It is an invalid value.
	ErrValueTooLong = fmt.Errorf("%w: %s", ErrInvalidValue, ErrMsgValueTooLong)

	// ErrRecordNotFound is returned by record stores.
	ErrRecordNotFound = errors.New(ErrMsgRecordNotFound)

	// ErrStoreClosed is returned by record stores after Close.
	ErrStoreClosed = errors.New(ErrMsgStoreClosed)

	// ErrStorage marks any other record store failure.
	ErrStorage = errors.New(ErrCodeStorage)

	// ErrCache marks render cache failures.
	ErrCache = errors.New(ErrCodeCache)
)

// NewConfigurationError creates a declaration-time error for a schema/slot.
func NewConfigurationError(msg, schema, slot string) error {
	return cuserr.WrapStdError(ErrConfiguration, ErrCodeConfiguration, msg).
		WithMetadata(MetaKeySchema, schema).
		WithMetadata(MetaKeySlot, slot)
}

// NewDeclarationError wraps a YAML declaration that could not be read or
// parsed. source is the file path, empty for in-memory data.
func NewDeclarationError(source string, cause error) error {
	return cuserr.WrapStdError(fmt.Errorf("%w: %w", ErrConfiguration, cause), ErrCodeConfiguration, ErrMsgInvalidDeclaration).
		WithMetadata(MetaKeySourceFile, source)
}

// NewDuplicateSlotError creates the error for a slot name registered twice.
func NewDuplicateSlotError(schema, slot string) error {
	return cuserr.WrapStdError(ErrDuplicateSlot, ErrCodeConfiguration, ErrMsgDuplicateSlot).
		WithMetadata(MetaKeySchema, schema).
		WithMetadata(MetaKeySlot, slot)
}

// NewSanitizerUnavailableError creates the fail-fast error for an allow-list
// that nothing can enforce.
func NewSanitizerUnavailableError(schema, slot string) error {
	return cuserr.WrapStdError(ErrSanitizerUnavailable, ErrCodeSanitizer, ErrMsgSanitizerUnavailable).
		WithMetadata(MetaKeySchema, schema).
		WithMetadata(MetaKeySlot, slot)
}

// NewResolutionError creates a render-time error for one slot. attribute may
// be empty; cause may be nil.
func NewResolutionError(msg, slot, attribute string, cause error) error {
	wrapped := ErrResolution
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrResolution, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeResolution, msg).
		WithMetadata(MetaKeySlot, slot).
		WithMetadata(MetaKeyAttribute, attribute)
}

// NewSanitizeError wraps a sanitizer failure for one slot.
func NewSanitizeError(slot string, cause error) error {
	return cuserr.WrapStdError(fmt.Errorf("%w: %w", ErrSanitize, cause), ErrCodeSanitizer, ErrMsgSanitizeFailed).
		WithMetadata(MetaKeySlot, slot)
}

// NewValueTooLongError creates a max-length validation error.
func NewValueTooLongError(slot string, maxLength, actual int) error {
	return cuserr.WrapStdError(ErrValueTooLong, ErrCodeValidation, ErrMsgValueTooLong).
		WithMetadata(MetaKeySlot, slot).
		WithMetadata(MetaKeyMaxLength, strconv.Itoa(maxLength)).
		WithMetadata(MetaKeyValue, strconv.Itoa(actual))
}

// NewInvalidValueError creates a validation error for a stored value.
func NewInvalidValueError(msg, schema, slot string) error {
	return cuserr.WrapStdError(ErrInvalidValue, ErrCodeValidation, msg).
		WithMetadata(MetaKeySchema, schema).
		WithMetadata(MetaKeySlot, slot)
}

// NewRecordNotFoundError creates a not-found error for a record lookup.
func NewRecordNotFoundError(schema, path, site string) error {
	return cuserr.WrapStdError(ErrRecordNotFound, ErrCodeStorage, ErrMsgRecordNotFound).
		WithMetadata(MetaKeySchema, schema).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeySite, site)
}

// NewRecordIDNotFoundError creates a not-found error for an id lookup.
func NewRecordIDNotFoundError(id string) error {
	return cuserr.WrapStdError(ErrRecordNotFound, ErrCodeStorage, ErrMsgRecordNotFound).
		WithMetadata(MetaKeyRecordID, id)
}

// NewStoreClosedError creates the error returned after Close.
func NewStoreClosedError() error {
	return cuserr.WrapStdError(ErrStoreClosed, ErrCodeStorage, ErrMsgStoreClosed)
}

// NewStorageError wraps a backend failure.
func NewStorageError(msg string, cause error) error {
	wrapped := ErrStorage
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrStorage, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeStorage, msg)
}

// NewStoreDriverNotFoundError creates an error for an unknown store driver.
func NewStoreDriverNotFoundError(driver string) error {
	return cuserr.WrapStdError(ErrStorage, ErrCodeStorage, ErrMsgStoreDriverNotFound).
		WithMetadata(MetaKeyDriver, driver)
}

// NewCacheError wraps a render cache backend failure.
func NewCacheError(msg string, cause error) error {
	return cuserr.WrapStdError(fmt.Errorf("%w: %w", ErrCache, cause), ErrCodeCache, msg)
}

// IsConfigurationError reports whether err is a declaration-time error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsResolutionError reports whether err is a per-record render-time error.
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrResolution)
}
