package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/primait/avrogen/internal/codec"
	"github.com/primait/avrogen/internal/compiler"
	"github.com/primait/avrogen/internal/config"
	"github.com/primait/avrogen/internal/schema"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeConfig      = "E002" // Config file missing, malformed or invalid
	ErrCodeShape       = "E003" // Document is not a schema
	ErrCodeLoadFailed  = "E004" // JSON syntax error
	ErrCodeNotFound    = "E005" // Path or type not found
	ErrCodeDependency  = "E006" // Unresolved reference, cycle or collision
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeGeneration  = "E008" // Codec generation failed
	ErrCodeInvalidData = "E009" // Value does not fit its schema
)

// LoadError is a classified failure with its source position when known.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Project is a compiled schema with its generated codecs.
type Project struct {
	Config *config.Config

	// Document is the root schema document as loaded.
	Document any

	Result    *compiler.Result
	Generator *codec.Generator
}

// ResolveConfig picks the configuration for a run: the --config file, else
// ./avrogen.yaml when present, else the defaults. A schema argument and
// --deps replace the file's values; override applies command flags last.
func ResolveConfig(opts *RootOptions, args []string, deps []string, override func(*config.Config)) (*config.Config, error) {
	path := opts.Config
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Read(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeConfig, Message: err.Error()}
		}
	}

	if len(args) > 0 {
		cfg.Schema = args[0]
	}
	if len(deps) > 0 {
		cfg.Dependencies = deps
	}
	if override != nil {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Message: fmt.Sprintf("invalid config: %v", err)}
	}
	return cfg, nil
}

// LoadProject loads, compiles and generates codecs for the schema cfg names.
func LoadProject(cfg *config.Config, logger *slog.Logger) (*Project, error) {
	logger.Debug("loading schema", "path", cfg.Schema)
	root, err := compiler.LoadFile(cfg.Schema)
	if err != nil {
		return nil, err
	}

	deps := make([]any, 0, len(cfg.Dependencies))
	for _, path := range cfg.Dependencies {
		logger.Debug("loading dependency", "path", path)
		doc, err := compiler.LoadFile(path)
		if err != nil {
			return nil, err
		}
		deps = append(deps, doc)
	}

	result, err := compiler.Compile(root, deps, cfg.NormalizeOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("normalized",
		"definitions", result.Table.Len(),
		"defined", len(result.Defined))

	gen, err := codec.New(result.Table)
	if err != nil {
		return nil, err
	}
	logger.Debug("generated codecs", "units", len(gen.Names()))

	return &Project{
		Config:    cfg,
		Document:  root,
		Result:    result,
		Generator: gen,
	}, nil
}

// Unit returns the unit named fqn, or the root type when fqn is empty.
func (p *Project) Unit(fqn string) (*codec.Unit, error) {
	if fqn == "" {
		ref, ok := p.Result.Root.(schema.Reference)
		if !ok {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: "root schema is not a named type, pass --type"}
		}
		fqn = ref.Name
	}
	u, ok := p.Generator.Unit(fqn)
	if !ok {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("unknown type %q", fqn)}
	}
	return u, nil
}

// classify maps an error from loading or generation to a LoadError.
func classify(err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}

	var cueErr *compiler.LoadError
	if errors.As(err, &cueErr) {
		return &LoadError{Code: ErrCodeLoadFailed, Message: cueErr.Message, Pos: cueErr.Pos}
	}

	var shapeErr *schema.ShapeError
	var depErr *compiler.DependencyError
	var genErr *codec.GenerationError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &LoadError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.As(err, &shapeErr):
		return &LoadError{Code: ErrCodeShape, Message: err.Error()}
	case errors.As(err, &depErr):
		return &LoadError{Code: ErrCodeDependency, Message: err.Error()}
	case errors.As(err, &genErr):
		return &LoadError{Code: ErrCodeGeneration, Message: err.Error()}
	case codec.IsDecodeError(err), codec.IsEncodeError(err):
		return &LoadError{Code: ErrCodeInvalidData, Message: err.Error()}
	default:
		return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
}

// reportFailure writes err in the configured format and returns the
// ExitError for it. Validation and dependency errors exit with
// ExitFailure, anything else with ExitCommandError.
func reportFailure(formatter *OutputFormatter, err error) error {
	var verrs compiler.ValidationErrors
	if errors.As(err, &verrs) {
		return outputValidationErrors(formatter, verrs)
	}

	le := classify(err)
	var details any
	if le.Pos.IsValid() {
		details = map[string]any{
			"file":   le.Pos.Filename(),
			"line":   le.Pos.Line(),
			"column": le.Pos.Column(),
		}
	}
	if le.Code == ErrCodeDependency {
		_ = formatter.Error(le.Code, le.Message, details)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", le.Code, le.Message))
	}
	return formatter.Fail(le.Code, le.Message, details)
}

// loadProject resolves the config and loads the project, reporting any
// failure through formatter.
func loadProject(opts *RootOptions, cmd *cobra.Command, args, deps []string, override func(*config.Config)) (*Project, *OutputFormatter, error) {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	cfg, err := ResolveConfig(opts, args, deps, override)
	if err != nil {
		return nil, formatter, reportFailure(formatter, err)
	}
	p, err := LoadProject(cfg, logger)
	if err != nil {
		return nil, formatter, reportFailure(formatter, err)
	}
	return p, formatter, nil
}
