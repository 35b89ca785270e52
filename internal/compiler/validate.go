package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/primait/avrogen/internal/schema"
)

// Validation error codes (E200-E299)
const (
	// Record errors (E201-E209)
	ErrDuplicateField   = "E201" // duplicate field name
	ErrInvalidName      = "E202" // invalid record, enum or field name
	ErrInvalidNamespace = "E203" // invalid namespace segment

	// Enum errors (E210-E219)
	ErrDuplicateSymbol  = "E210" // duplicate enum symbol
	ErrInvalidSymbol    = "E211" // symbol is not a valid Avro name
	ErrUnknownDefault   = "E212" // default symbol not in symbols
	ErrUnknownPreferred = "E213" // preferred_subset symbol not in symbols
	ErrEmptyEnumeration = "E214" // enum without symbols

	// Logical type errors (E220-E229)
	ErrDecimalPrecision = "E220" // decimal precision must be positive
	ErrDecimalScale     = "E221" // decimal scale outside [0, precision]
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// namePattern is the Avro name grammar.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every definition in table against the semantic rules the
// parser cannot enforce locally. Returns all errors found (does not
// fail-fast), ordered by FQN.
func Validate(table schema.GlobalTable) ValidationErrors {
	var errs ValidationErrors
	for _, name := range table.Names() {
		def, _ := table.Lookup(name)
		switch v := def.(type) {
		case *schema.Record:
			errs = append(errs, validateRecord(v)...)
		case *schema.Enum:
			errs = append(errs, validateEnum(v)...)
		}
	}
	return errs
}

func validateNamed(fqn string) []ValidationError {
	var errs []ValidationError
	ns, name := schema.SplitFQN(fqn)
	if !namePattern.MatchString(name) {
		errs = append(errs, ValidationError{
			Field:   fqn,
			Message: fmt.Sprintf("invalid name %q", name),
			Code:    ErrInvalidName,
		})
	}
	if ns != "" {
		for _, seg := range strings.Split(ns, ".") {
			if !namePattern.MatchString(seg) {
				errs = append(errs, ValidationError{
					Field:   fqn,
					Message: fmt.Sprintf("invalid namespace segment %q", seg),
					Code:    ErrInvalidNamespace,
				})
			}
		}
	}
	return errs
}

func validateRecord(r *schema.Record) []ValidationError {
	fqn := r.FQN()
	errs := validateNamed(fqn)

	seen := make(map[string]bool)
	for i, f := range r.Fields {
		path := fmt.Sprintf("%s.fields[%d]", fqn, i)
		if seen[f.Name] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("duplicate field name: %q", f.Name),
				Code:    ErrDuplicateField,
			})
		}
		seen[f.Name] = true

		if !namePattern.MatchString(f.Name) {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("invalid field name %q", f.Name),
				Code:    ErrInvalidName,
			})
		}
		errs = append(errs, validateLogicals(f.Type, path+".type")...)
	}
	return errs
}

// validateLogicals checks decimal parameters anywhere inside s.
func validateLogicals(s schema.Schema, path string) []ValidationError {
	switch v := s.(type) {
	case schema.Logical:
		if v.Kind != schema.Decimal {
			return nil
		}
		if v.Precision <= 0 {
			return []ValidationError{{
				Field:   path,
				Message: fmt.Sprintf("decimal precision must be positive, got %d", v.Precision),
				Code:    ErrDecimalPrecision,
			}}
		}
		if v.Scale < 0 || v.Scale > v.Precision {
			return []ValidationError{{
				Field:   path,
				Message: fmt.Sprintf("decimal scale %d outside [0, %d]", v.Scale, v.Precision),
				Code:    ErrDecimalScale,
			}}
		}
	case schema.Array:
		return validateLogicals(v.Items, path+".items")
	case schema.Map:
		return validateLogicals(v.Values, path+".values")
	case schema.Union:
		var errs []ValidationError
		for i, m := range v.Members {
			errs = append(errs, validateLogicals(m, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return errs
	}
	return nil
}

func validateEnum(e *schema.Enum) []ValidationError {
	fqn := e.FQN()
	errs := validateNamed(fqn)

	if len(e.Symbols) == 0 {
		errs = append(errs, ValidationError{
			Field:   fqn + ".symbols",
			Message: "at least one symbol is required",
			Code:    ErrEmptyEnumeration,
		})
	}

	seen := make(map[string]bool)
	for i, sym := range e.Symbols {
		path := fmt.Sprintf("%s.symbols[%d]", fqn, i)
		if seen[sym] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("duplicate symbol: %q", sym),
				Code:    ErrDuplicateSymbol,
			})
		}
		seen[sym] = true

		if !namePattern.MatchString(sym) {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("invalid symbol %q", sym),
				Code:    ErrInvalidSymbol,
			})
		}
	}

	if e.Default != "" && !seen[e.Default] {
		errs = append(errs, ValidationError{
			Field:   fqn + ".default",
			Message: fmt.Sprintf("default %q is not a symbol", e.Default),
			Code:    ErrUnknownDefault,
		})
	}

	for i, sym := range e.PreferredSubset {
		if !seen[sym] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.preferred_subset[%d]", fqn, i),
				Message: fmt.Sprintf("%q is not a symbol", sym),
				Code:    ErrUnknownPreferred,
			})
		}
	}
	return errs
}
