package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/compiler"
	"github.com/primait/avrogen/internal/wire"
)

// EncodeResult holds a value encoded to Avro binary.
type EncodeResult struct {
	Type   string `json:"type"`
	Size   int    `json:"size"`
	Base64 string `json:"base64"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValueOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode [schema]",
		Short: "Encode a record value to Avro binary",
		Long: `Read a record value in intermediate JSON form, check it against the
generated codec and print its Avro binary encoding in base64.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	opts.bind(cmd)

	return cmd
}

func runEncode(opts *ValueOptions, args []string, cmd *cobra.Command) error {
	p, formatter, err := loadProject(opts.RootOptions, cmd, args, opts.Deps, nil)
	if err != nil {
		return err
	}

	u, native, err := readValue(p, opts, cmd)
	if err != nil {
		return reportFailure(formatter, err)
	}
	out, err := u.Encode(native)
	if err != nil {
		return reportFailure(formatter, err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		return formatter.Fail(ErrCodeGeneric, fmt.Sprintf("%s is not a record", u.Name), nil)
	}

	schemaJSON, err := compiler.StandaloneJSON(u.Name, p.Result.Table)
	if err != nil {
		return reportFailure(formatter, err)
	}
	encode, err := wire.NewEncoder(schemaJSON)
	if err != nil {
		return formatter.Fail(ErrCodeGeneration, err.Error(), nil)
	}
	b, err := encode(u.Name, m)
	if err != nil {
		return formatter.Fail(ErrCodeInvalidData, err.Error(), nil)
	}

	result := EncodeResult{
		Type:   u.Name,
		Size:   len(b),
		Base64: base64.StdEncoding.EncodeToString(b),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.Base64)
	return nil
}
