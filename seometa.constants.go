package seometa

import "time"

// Slot kind names used in declarations and logs
const (
	KindNameTag        = "tag"
	KindNameMetaTag    = "metatag"
	KindNameKeywordTag = "keywordtag"
	KindNameRaw        = "raw"
	KindNameUnknown    = "unknown"
)

// Storage kind names used in declarations
const (
	StorageNameBounded   = "char"
	StorageNameUnbounded = "text"
)

// Placement names
const (
	PlacementNameHead = "head"
	PlacementNameBody = "body"
	PlacementNameAll  = "all"
)

// Error strategy names
const (
	ErrorStrategyNamePropagate = "propagate"
	ErrorStrategyNameSkip      = "skip"
)

// Default display name of keyword slots
const DefaultKeywordDisplayName = "keywords"

// DefaultHeadTags is the allow-list applied to head-only raw slots that
// declare no valid tags of their own.
var DefaultHeadTags = []string{"head", "title", "base", "link", "meta", "script"}

// ReservedSlotNames cannot be used as slot names; storage collaborators use
// them for their own columns.
var ReservedSlotNames = []string{"id", "path", "site", "language", "subdomain", "content_type", "object_id"}

// Markup constants
const (
	FragmentSeparator = "\n"
	MetaTagFormat     = `<meta name="%s" content="%s" />`
	ElementFormat     = "<%s>%s</%s>"
)

// Help text notes appended when a slot has a default
const (
	HelpNoteLiteral  = `If empty, the default "%v" is used.`
	HelpNoteField    = `If empty, this is populated from "%s".`
	HelpNoteSlot     = `If empty, this is populated from the %s slot.`
	HelpNoteCallable = "If empty, this is populated automatically."
)

// Cache defaults
const (
	DefaultRenderCacheTTL        = 5 * time.Minute
	DefaultRenderCacheMaxEntries = 1000
	DefaultRenderCacheMaxSize    = 1 << 20 // 1MB
	CacheKeyPrefix               = "seometa"
	CacheKeySeparator            = "."
	CacheKeyFieldSeparator       = "\x00"
)

// Redis defaults
const (
	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisPingTimeout = 5 * time.Second
)

// Store driver names
const (
	StoreDriverNameMemory   = "memory"
	StoreDriverNamePostgres = "postgres"
)

// Postgres defaults
const (
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	PostgresTablePrefix            = "seometa_"
)

// Metric names
const (
	MetricsNamespace        = "seometa"
	MetricSlotsRendered     = "slots_rendered_total"
	MetricSlotsOmitted      = "slots_omitted_total"
	MetricSlotFailures      = "slot_failures_total"
	MetricCacheHits         = "render_cache_hits_total"
	MetricCacheMisses       = "render_cache_misses_total"
	MetricLabelSchema       = "schema"
	MetricLabelKind         = "kind"
	MetricLabelSlot         = "slot"
	MetricHelpSlotsRendered = "Slots that produced a markup fragment."
	MetricHelpSlotsOmitted  = "Slots that resolved to no value and were omitted."
	MetricHelpSlotFailures  = "Slots whose resolution or rendering failed."
	MetricHelpCacheHits     = "Render cache hits."
	MetricHelpCacheMisses   = "Render cache misses."
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeySchema     = "schema"
	MetaKeySlot       = "slot"
	MetaKeyGroup      = "group"
	MetaKeyKind       = "kind"
	MetaKeyAttribute  = "attribute"
	MetaKeyReason     = "reason"
	MetaKeyValue      = "value"
	MetaKeyMaxLength  = "max_length"
	MetaKeyDriver     = "driver"
	MetaKeyRecordID   = "record_id"
	MetaKeyPath       = "path"
	MetaKeySite       = "site"
	MetaKeyPlacement  = "placement"
	MetaKeySourceFile = "source_file"
)

// Log message constants
const (
	LogMsgSchemaCreated     = "schema created"
	LogMsgSlotRegistered    = "slot registered"
	LogMsgSlotRejected      = "slot registration rejected"
	LogMsgRenderStart       = "render started"
	LogMsgRenderComplete    = "render complete"
	LogMsgSlotSkipped       = "slot skipped after failure"
	LogMsgCacheHit          = "render cache hit"
	LogMsgCacheMiss         = "render cache miss"
	LogMsgCacheError        = "render cache error"
	LogMsgCacheSkipFailures = "render output has failures, not cached"
	LogMsgStoreOpened       = "record store opened"
	LogMsgMigrationApplied  = "migration applied"
	LogMsgResolveFailed     = "slot resolution failed"
)

// Log field constants
const (
	LogFieldSchema    = "schema"
	LogFieldSlot      = "slot"
	LogFieldKind      = "kind"
	LogFieldGroup     = "group"
	LogFieldPlacement = "placement"
	LogFieldFragments = "fragments"
	LogFieldFailures  = "failures"
	LogFieldCacheKey  = "cache_key"
	LogFieldDriver    = "driver"
	LogFieldMigration = "migration"
	LogFieldError     = "error"
	LogFieldDefault   = "default"
)
