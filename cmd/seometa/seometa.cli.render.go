package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itsatony/go-seometa"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	schemaPath string
	recordPath string
	placement  string
	strategy   string
	group      string
	groups     bool
	outputPath string
	format     string
	dsn        string
	path       string
	site       string
	verbose    bool
}

// renderOutput represents JSON output for render
type renderOutput struct {
	Schema    string               `json:"schema"`
	Placement string               `json:"placement"`
	Markup    string               `json:"markup"`
	Fragments []renderFragmentJSON `json:"fragments"`
	Failures  []renderFailureJSON  `json:"failures,omitempty"`
}

type renderFragmentJSON struct {
	Slot   string `json:"slot"`
	Group  string `json:"group,omitempty"`
	Kind   string `json:"kind"`
	Markup string `json:"markup"`
}

type renderFailureJSON struct {
	Slot  string `json:"slot"`
	Error string `json:"error"`
}

func newRenderCmd() *cobra.Command {
	cfg := &renderConfig{}
	cmd := &cobra.Command{
		Use:   CmdNameRender,
		Short: HelpRenderShort,
		Long:  HelpRenderLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.schemaPath, FlagSchema, FlagSchemaShort, "", HelpFlagSchema)
	f.StringVarP(&cfg.recordPath, FlagRecord, FlagRecordShort, "", HelpFlagRecord)
	f.StringVarP(&cfg.placement, FlagPlacement, FlagPlacementShort, FlagDefaultPlacement, HelpFlagPlacement)
	f.BoolVarP(&cfg.groups, FlagGroups, FlagGroupsShort, false, HelpFlagGroups)
	f.StringVar(&cfg.group, FlagGroup, "", HelpFlagGroup)
	f.StringVar(&cfg.strategy, FlagStrategy, FlagDefaultStrategy, HelpFlagStrategy)
	f.StringVarP(&cfg.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, HelpFlagOutput)
	f.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, HelpFlagFormat)
	f.StringVar(&cfg.dsn, FlagDSN, "", HelpFlagDSN)
	f.StringVar(&cfg.path, FlagPath, "", HelpFlagPath)
	f.StringVar(&cfg.site, FlagSite, "", HelpFlagSite)
	f.BoolVarP(&cfg.verbose, FlagVerbose, FlagVerboseShort, false, HelpFlagVerbose)
	return cmd
}

func (c *renderConfig) validate() error {
	if c.schemaPath == "" {
		return fail(ExitCodeUsageError, ErrMsgMissingSchema, nil)
	}
	if c.recordPath != "" && c.dsn != "" {
		return fail(ExitCodeUsageError, ErrMsgConflictingSources, nil)
	}
	if c.recordPath == "" && (c.dsn == "" || c.path == "") {
		return fail(ExitCodeUsageError, ErrMsgMissingRecordSource, nil)
	}
	if c.format != OutputFormatText && c.format != OutputFormatJSON {
		return fail(ExitCodeUsageError, ErrMsgInvalidFormat, errors.New(c.format))
	}
	return nil
}

func runRender(ctx context.Context, cfg *renderConfig, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	placement, err := seometa.ParsePlacement(cfg.placement)
	if err != nil {
		return fail(ExitCodeUsageError, ErrMsgInvalidPlacement, err)
	}
	strategy, err := seometa.ParseErrorStrategy(cfg.strategy)
	if err != nil {
		return fail(ExitCodeUsageError, ErrMsgInvalidStrategy, err)
	}

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	schema, err := loadSchema(cfg.schemaPath, logger)
	if err != nil {
		return err
	}

	rec, err := loadRecord(ctx, cfg, schema, stdin)
	if err != nil {
		return err
	}

	renderer, err := seometa.NewRenderer(
		seometa.WithErrorStrategy(strategy),
		seometa.WithLogger(logger),
	)
	if err != nil {
		return fail(ExitCodeError, ErrMsgRenderFailed, err)
	}

	var data []byte
	if cfg.group != "" {
		markup, err := renderer.RenderGroup(ctx, rec, schema, cfg.group)
		if err != nil {
			return fail(ExitCodeError, ErrMsgRenderFailed, err)
		}
		data = []byte(markup + FmtNewline)
	} else {
		out, err := renderer.RenderAll(ctx, rec, schema, placement)
		if err != nil {
			return fail(ExitCodeError, ErrMsgRenderFailed, err)
		}
		data, err = formatRenderOutput(cfg, out)
		if err != nil {
			return fail(ExitCodeError, ErrMsgRenderFailed, err)
		}
		for _, f := range out.Failures {
			fmt.Fprintf(stderr, FailureTextFormat+FmtNewline, f.Slot, f.Err)
		}
	}

	if err := writeOutput(cfg.outputPath, data, stdout); err != nil {
		return fail(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	return nil
}

func loadSchema(path string, logger *zap.Logger) (*seometa.Schema, error) {
	schema, err := seometa.LoadSchemaFile(path,
		seometa.WithSchemaLogger(logger),
		seometa.WithSchemaSanitizer(seometa.NewHTMLSanitizer(logger)),
	)
	if err == nil {
		return schema, nil
	}
	if seometa.IsConfigurationError(err) && !isReadError(err) {
		return nil, fail(ExitCodeValidationError, ErrMsgSchemaInvalid, err)
	}
	return nil, fail(ExitCodeInputError, ErrMsgReadFileFailed, err)
}

// loadRecord reads the record from --record or looks it up in the store
// named by --dsn.
func loadRecord(ctx context.Context, cfg *renderConfig, schema *seometa.Schema, stdin io.Reader) (seometa.Record, error) {
	if cfg.recordPath != "" {
		data, err := readInput(cfg.recordPath, stdin)
		if err != nil {
			return nil, fail(ExitCodeInputError, ErrMsgReadFileFailed, err)
		}
		rec, err := seometa.ParseRecordYAML(data)
		if err != nil {
			return nil, fail(ExitCodeValidationError, ErrMsgRecordInvalid, err)
		}
		if err := schema.ValidateValues(rec.Values); err != nil {
			return nil, fail(ExitCodeValidationError, ErrMsgRecordInvalid, err)
		}
		return rec, nil
	}

	store, err := seometa.OpenStore(seometa.StoreDriverNamePostgres, cfg.dsn)
	if err != nil {
		return nil, fail(ExitCodeError, ErrMsgStoreFailed, err)
	}
	defer func() { _ = store.Close() }()

	rec, err := store.Lookup(ctx, schema.Name(), cfg.path, cfg.site)
	if err != nil {
		if errors.Is(err, seometa.ErrRecordNotFound) {
			return nil, fail(ExitCodeInputError, ErrMsgStoreFailed, err)
		}
		return nil, fail(ExitCodeError, ErrMsgStoreFailed, err)
	}
	return rec, nil
}

func formatRenderOutput(cfg *renderConfig, out *seometa.Output) ([]byte, error) {
	if cfg.format == OutputFormatJSON {
		return renderJSON(out)
	}
	if !cfg.groups {
		markup := out.String()
		if markup == "" {
			return nil, nil
		}
		return []byte(markup + FmtNewline), nil
	}

	var b strings.Builder
	for _, g := range out.Groups() {
		name := g.Group
		if name == "" {
			name = GroupUngrouped
		}
		fmt.Fprintf(&b, GroupHeaderFormat+FmtNewline, name)
		b.WriteString(g.String())
		b.WriteString(FmtNewline)
	}
	return []byte(b.String()), nil
}

func renderJSON(out *seometa.Output) ([]byte, error) {
	result := renderOutput{
		Schema:    out.Schema,
		Placement: out.Placement.String(),
		Markup:    out.String(),
		Fragments: make([]renderFragmentJSON, 0, out.Len()),
	}
	for _, f := range out.Fragments {
		result.Fragments = append(result.Fragments, renderFragmentJSON{
			Slot:   f.Slot,
			Group:  f.Group,
			Kind:   f.Kind.String(),
			Markup: f.Markup,
		})
	}
	for _, f := range out.Failures {
		result.Failures = append(result.Failures, renderFailureJSON{Slot: f.Slot, Error: f.Err.Error()})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
