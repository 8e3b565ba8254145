package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagSchema    = "schema"
	FlagRecord    = "record"
	FlagPlacement = "placement"
	FlagGroups    = "groups"
	FlagGroup     = "group"
	FlagStrategy  = "strategy"
	FlagOutput    = "output"
	FlagFormat    = "format"
	FlagDSN       = "dsn"
	FlagPath      = "path"
	FlagSite      = "site"
	FlagVerbose   = "verbose"
)

// Flag names - short form
const (
	FlagSchemaShort    = "s"
	FlagRecordShort    = "r"
	FlagPlacementShort = "p"
	FlagGroupsShort    = "g"
	FlagOutputShort    = "o"
	FlagFormatShort    = "F"
	FlagVerboseShort   = "v"
)

// Flag default values
const (
	FlagDefaultOutput    = "-" // stdout
	FlagDefaultFormat    = "text"
	FlagDefaultPlacement = "all"
	FlagDefaultStrategy  = "propagate"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingSchema       = "schema file required"
	ErrMsgMissingRecordSource = "either --record or --dsn with --path is required"
	ErrMsgConflictingSources  = "--record and --dsn cannot be combined"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgSchemaInvalid       = "schema is invalid"
	ErrMsgRecordInvalid       = "record is invalid"
	ErrMsgRenderFailed        = "render failed"
	ErrMsgStoreFailed         = "record store failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgInvalidPlacement    = "invalid placement"
	ErrMsgInvalidStrategy     = "invalid error strategy"
)

// CLI metadata
const (
	CLIName        = "seometa"
	CLIDescription = "Render and validate SEO metadata schemas"
	CLILong        = `seometa renders the head and body metadata of a page from a YAML schema
declaration and a record, either read from a YAML file or looked up in a
PostgreSQL record store.`
)

// Help texts
const (
	HelpRenderShort = "Render the metadata of a record"
	HelpRenderLong  = `Render the metadata of a record.

Examples:
    seometa render -s schema.yaml -r record.yaml -p head
    seometa render -s schema.yaml -r record.yaml --groups
    cat record.yaml | seometa render -s schema.yaml -r -
    seometa render -s schema.yaml --dsn postgres://localhost/seo --path /about --site example.com`
	HelpValidateShort = "Validate a schema declaration"
	HelpVersionShort  = "Show version information"

	HelpFlagSchema    = "schema declaration file"
	HelpFlagRecord    = `record file (use "-" for stdin)`
	HelpFlagPlacement = "placement: head, body, all"
	HelpFlagGroups    = "print fragments grouped by group"
	HelpFlagGroup     = "render only this group"
	HelpFlagStrategy  = "on slot failure: propagate, skip"
	HelpFlagOutput    = "output file"
	HelpFlagFormat    = "output format: text, json"
	HelpFlagDSN       = "PostgreSQL connection string of a record store"
	HelpFlagPath      = "page path to look up in the record store"
	HelpFlagSite      = "site to look up in the record store"
	HelpFlagVerbose   = "log debug output to stderr"
)

// Version output format templates
const (
	VersionTextTemplate = "seometa version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Validation and render output templates
const (
	ValidationTextSuccess = "Schema %q is valid (%d slots)"
	ValidationSlotFormat  = "  %-20s %-10s %-5s %s"
	GroupHeaderFormat     = "<!-- %s -->"
	GroupUngrouped        = "ungrouped"
	FailureTextFormat     = "skipped %s: %v"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
