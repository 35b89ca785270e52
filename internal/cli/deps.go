package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/compiler"
	"github.com/primait/avrogen/internal/schema"
)

// DepsResult lists a schema's dependency structure.
type DepsResult struct {
	// External are the names the root document uses without defining.
	External []string `json:"external"`

	// Order lists every definition, dependencies first.
	Order []string `json:"order"`
}

// NewDepsCommand creates the deps command.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	var deps []string

	cmd := &cobra.Command{
		Use:   "deps [schema]",
		Short: "Print the external references and dependency order",
		Long: `Print the named types a schema refers to without defining them, and the
order in which all definitions must be emitted so each follows the types
it uses.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(rootOpts, args, deps, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&deps, "deps", "d", nil, "dependency schema documents, loaded in order")

	return cmd
}

func runDeps(opts *RootOptions, args, deps []string, cmd *cobra.Command) error {
	p, formatter, err := loadProject(opts, cmd, args, deps, nil)
	if err != nil {
		return err
	}

	root, err := schema.Parse(p.Document)
	if err != nil {
		return reportFailure(formatter, err)
	}

	result := DepsResult{
		External: compiler.ExternalDependencies(root),
		Order:    p.Result.Order,
	}
	if result.External == nil {
		result.External = []string{}
	}
	return outputDepsSuccess(formatter, result)
}

// outputDepsSuccess outputs the dependency listing.
func outputDepsSuccess(formatter *OutputFormatter, result DepsResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.External) > 0 {
		fmt.Fprintln(formatter.Writer, "External references:")
		for _, name := range result.External {
			fmt.Fprintf(formatter.Writer, "  %s\n", name)
		}
		fmt.Fprintln(formatter.Writer)
	}

	fmt.Fprintln(formatter.Writer, "Dependency order:")
	for i, name := range result.Order {
		fmt.Fprintf(formatter.Writer, "  %d. %s\n", i+1, name)
	}
	return nil
}
