package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/compiler"
	"github.com/primait/avrogen/internal/config"
	"github.com/primait/avrogen/internal/schema"
	"github.com/primait/avrogen/internal/wire"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Deps             []string
	Output           string
	Layout           string
	Extension        string
	ScopeEmbedded    bool
	DetectCollisions bool
	Standalone       bool // inline referenced definitions into each file
	All              bool // also write definitions that come from dependencies
}

// GeneratedUnit describes one written schema file.
type GeneratedUnit struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContainsPII bool   `json:"contains_pii"`
}

// GenerateResult is the summary printed after a run.
type GenerateResult struct {
	Output string          `json:"output"`
	Units  []GeneratedUnit `json:"units"`
	Order  []string        `json:"order"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [schema]",
		Short: "Write one normalized schema file per named type",
		Long: `Compile an Avro schema with its dependencies and write every record and
enum it defines to its own file under the output directory.

Each file is checked against the Avro parser before it is written. The
summary lists the files in dependency order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Deps, "deps", "d", nil, "dependency schema documents, loaded in order")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "file layout (flat|tree)")
	cmd.Flags().StringVar(&opts.Extension, "ext", "", "file extension")
	cmd.Flags().BoolVar(&opts.ScopeEmbedded, "scope-embedded", false, "qualify nested definitions with their record's name")
	cmd.Flags().BoolVar(&opts.DetectCollisions, "detect-collisions", false, "fail when two definitions share a name")
	cmd.Flags().BoolVar(&opts.Standalone, "standalone", false, "inline referenced definitions into each file")
	cmd.Flags().BoolVar(&opts.All, "all", false, "also write definitions from dependencies")

	return cmd
}

func runGenerate(opts *GenerateOptions, args []string, cmd *cobra.Command) error {
	flags := cmd.Flags()
	override := func(cfg *config.Config) {
		if flags.Changed("output") {
			cfg.Output = opts.Output
		}
		if flags.Changed("layout") {
			cfg.Layout = opts.Layout
		}
		if flags.Changed("ext") {
			cfg.Extension = opts.Extension
		}
		if flags.Changed("scope-embedded") {
			cfg.ScopeEmbedded = opts.ScopeEmbedded
		}
		if flags.Changed("detect-collisions") {
			cfg.DetectCollisions = opts.DetectCollisions
		}
	}

	p, formatter, err := loadProject(opts.RootOptions, cmd, args, opts.Deps, override)
	if err != nil {
		return err
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	layout, err := compiler.ParseLayout(p.Config.Layout)
	if err != nil {
		return formatter.Fail(ErrCodeConfig, err.Error(), nil)
	}

	names := p.Result.Order
	if !opts.All {
		names = definedInOrder(p.Result)
	}

	result := GenerateResult{Output: p.Config.Output, Order: p.Result.Order}
	for _, fqn := range names {
		data, err := renderUnit(p, fqn, opts.Standalone)
		if err != nil {
			return reportFailure(formatter, err)
		}

		rel := compiler.Path(fqn, layout, p.Config.Extension)
		if err := writeUnit(filepath.Join(p.Config.Output, rel), data); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", rel, err), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: writing %s", ErrCodeWriteFailed, rel), err)
		}
		logger.Debug("wrote unit", "name", fqn, "path", rel)

		u, _ := p.Generator.Unit(fqn)
		result.Units = append(result.Units, GeneratedUnit{
			Name:        fqn,
			Path:        rel,
			ContainsPII: u.ContainsPII(),
		})
	}

	return outputGenerateSuccess(formatter, result)
}

// definedInOrder filters the dependency order down to the root's own
// definitions.
func definedInOrder(r *compiler.Result) []string {
	own := make(map[string]bool, len(r.Defined))
	for _, name := range r.Defined {
		own[name] = true
	}
	var out []string
	for _, name := range r.Order {
		if own[name] {
			out = append(out, name)
		}
	}
	return out
}

// renderUnit returns the file contents for fqn after the Avro parser has
// accepted its standalone form.
func renderUnit(p *Project, fqn string, standalone bool) ([]byte, error) {
	full, err := compiler.StandaloneJSON(fqn, p.Result.Table)
	if err != nil {
		return nil, err
	}
	if err := wire.Check(full); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneration, Message: fmt.Sprintf("%s: %v", fqn, err)}
	}
	if standalone {
		return full, nil
	}
	def, _ := p.Result.Table.Lookup(fqn)
	return schema.MarshalJSON(def)
}

func writeUnit(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// outputGenerateSuccess outputs the generation summary.
func outputGenerateSuccess(formatter *OutputFormatter, result GenerateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Generated %d unit(s) in %s\n\n", len(result.Units), result.Output)
	for _, u := range result.Units {
		marker := ""
		if u.ContainsPII {
			marker = " (pii)"
		}
		fmt.Fprintf(formatter.Writer, "  %s → %s%s\n", u.Name, u.Path, marker)
	}
	return nil
}
