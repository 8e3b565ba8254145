package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-seometa"
)

// Slot placement labels in validate output
const (
	slotPlacementHead = "head"
	slotPlacementBody = "body"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	schemaPath string
	format     string
	verbose    bool
}

// validateOutput represents JSON output for validate
type validateOutput struct {
	Valid  bool               `json:"valid"`
	Schema string             `json:"schema,omitempty"`
	Error  string             `json:"error,omitempty"`
	Slots  []validateSlotJSON `json:"slots,omitempty"`
}

type validateSlotJSON struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Placement string `json:"placement"`
	Group     string `json:"group,omitempty"`
	Editable  bool   `json:"editable"`
	MaxLength int    `json:"max_length"`
	Default   string `json:"default"`
}

func newValidateCmd() *cobra.Command {
	cfg := &validateConfig{}
	cmd := &cobra.Command{
		Use:   CmdNameValidate,
		Short: HelpValidateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.schemaPath, FlagSchema, FlagSchemaShort, "", HelpFlagSchema)
	f.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, HelpFlagFormat)
	f.BoolVarP(&cfg.verbose, FlagVerbose, FlagVerboseShort, false, HelpFlagVerbose)
	return cmd
}

func runValidate(cfg *validateConfig, stdout, stderr io.Writer) error {
	if cfg.schemaPath == "" {
		return fail(ExitCodeUsageError, ErrMsgMissingSchema, nil)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return fail(ExitCodeUsageError, ErrMsgInvalidFormat, errors.New(cfg.format))
	}

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	schema, err := loadSchema(cfg.schemaPath, logger)
	if cfg.format == OutputFormatJSON {
		return outputValidateJSON(schema, err, stdout)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, ValidationTextSuccess+FmtNewline, schema.Name(), schema.Len())
	for _, slot := range schema.Slots() {
		fmt.Fprintf(stdout, ValidationSlotFormat+FmtNewline,
			slot.Name(), slot.Kind(), slotPlacement(slot), slot.Default())
	}
	return nil
}

func outputValidateJSON(schema *seometa.Schema, loadErr error, stdout io.Writer) error {
	result := validateOutput{Valid: loadErr == nil}
	if loadErr != nil {
		result.Error = loadErr.Error()
	} else {
		result.Schema = schema.Name()
		for _, slot := range schema.Slots() {
			result.Slots = append(result.Slots, validateSlotJSON{
				Name:      slot.Name(),
				Kind:      slot.Kind().String(),
				Placement: slotPlacement(slot),
				Group:     slot.Group(),
				Editable:  slot.Editable(),
				MaxLength: slot.MaxLength(),
				Default:   slot.Default().String(),
			})
		}
	}

	jsonBytes, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	// The JSON document already carries the error.
	var exitErr *exitError
	if errors.As(loadErr, &exitErr) {
		return &exitError{code: exitErr.code, msg: exitErr.msg}
	}
	return nil
}

func slotPlacement(slot *seometa.SlotSpec) string {
	if slot.HeadOnly() {
		return slotPlacementHead
	}
	return slotPlacementBody
}
