package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/codec"
	"github.com/primait/avrogen/internal/compiler"
)

// ValueOptions holds the flags shared by commands that read one value.
type ValueOptions struct {
	*RootOptions
	Deps  []string
	Type  string
	Input string // JSON file, "-" for stdin
}

func (o *ValueOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&o.Deps, "deps", "d", nil, "dependency schema documents, loaded in order")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "", "type of the value (default: the root type)")
	cmd.Flags().StringVarP(&o.Input, "input", "i", "-", "JSON value in intermediate form, - for stdin")
}

// NewRedactCommand creates the redact command.
func NewRedactCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValueOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "redact [schema]",
		Short: "Replace PII fields of a value with zero values",
		Long: `Read a JSON value in intermediate form, decode it, replace every field
flagged as PII with the zero value of its type and print the re-encoded
value.

Bytes are written as strings of codepoints 0-255, as in Avro defaults.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRedact(opts, args, cmd)
		},
	}

	opts.bind(cmd)

	return cmd
}

func runRedact(opts *ValueOptions, args []string, cmd *cobra.Command) error {
	p, formatter, err := loadProject(opts.RootOptions, cmd, args, opts.Deps, nil)
	if err != nil {
		return err
	}

	u, native, err := readValue(p, opts, cmd)
	if err != nil {
		return reportFailure(formatter, err)
	}

	clean, err := u.DropPII(native)
	if err != nil {
		return reportFailure(formatter, err)
	}
	out, err := u.Encode(clean)
	if err != nil {
		return reportFailure(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(codec.ToJSON(out))
	}
	return formatter.JSON(codec.ToJSON(out))
}

// readValue reads the input JSON and decodes it as the selected unit.
func readValue(p *Project, opts *ValueOptions, cmd *cobra.Command) (*codec.Unit, any, error) {
	u, err := p.Unit(opts.Type)
	if err != nil {
		return nil, nil, err
	}

	name, data, err := readInput(opts.Input, cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}
	doc, err := compiler.LoadDocument(name, data)
	if err != nil {
		return nil, nil, err
	}

	intermediate, err := p.Generator.FromJSON(u.Schema, doc)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeInvalidData, Message: err.Error()}
	}
	native, err := u.Decode(intermediate)
	if err != nil {
		return nil, nil, err
	}
	return u, native, nil
}

func readInput(path string, stdin io.Reader) (string, []byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading input: %w", err)
	}
	return path, data, nil
}
