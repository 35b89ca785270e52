package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                       `json:"valid"`
	Definitions int                        `json:"definitions,omitempty"`
	Errors      []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var deps []string

	cmd := &cobra.Command{
		Use:   "validate [schema]",
		Short: "Validate a schema without writing output",
		Long: `Validate an Avro schema document and its dependencies.

Parses and normalizes every document, checks names, symbols, defaults and
logical type parameters, resolves references, orders the definitions and
builds their codecs. Nothing is written.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, deps, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&deps, "deps", "d", nil, "dependency schema documents, loaded in order")

	return cmd
}

func runValidate(opts *RootOptions, args, deps []string, cmd *cobra.Command) error {
	p, formatter, err := loadProject(opts, cmd, args, deps, nil)
	if err != nil {
		return err
	}

	newLogger(opts, cmd.ErrOrStderr()).Debug("validated", "definitions", p.Result.Table.Len())
	return outputValidateSuccess(formatter, p.Result.Table.Len())
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, definitions int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Definitions: definitions})
	}

	fmt.Fprintf(formatter.Writer, "✓ Schema valid (%d definition(s))\n", definitions)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.JSON(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
