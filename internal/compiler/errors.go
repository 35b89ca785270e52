package compiler

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Dependency error codes.
const (
	CodeUnresolved = "UNRESOLVED_REFERENCE"
	CodeCycle      = "CYCLE_DETECTED"
	CodeCollision  = "NAME_COLLISION"
)

// DependencyError reports a problem with the named-type graph: references
// that resolve to nothing, a cycle, or two different definitions sharing
// one FQN. Names lists every offending FQN in lexical order.
type DependencyError struct {
	Code    string
	Names   []string
	Message string
}

func (e *DependencyError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, strings.Join(e.Names, ", "), e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, strings.Join(e.Names, ", "))
}

// IsDependencyError returns true if err is (or wraps) a DependencyError.
func IsDependencyError(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}

// IsCycleError returns true if err is a DependencyError for a cycle.
func IsCycleError(err error) bool {
	var de *DependencyError
	return errors.As(err, &de) && de.Code == CodeCycle
}

// LoadError reports a malformed schema document with its source position.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "json",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
