package schema

import (
	"errors"
	"fmt"
)

// ShapeError reports a schema document that cannot be turned into IR:
// an unsupported type/logicalType combination, a missing attribute or an
// attribute of the wrong JSON kind.
type ShapeError struct {
	Path    string // location inside the document, e.g. "fields[2].type"
	Message string
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("schema shape: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("schema shape: %s", e.Message)
}

// IsShapeError returns true if err is (or wraps) a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// withPrefix re-roots a ShapeError under a parent path.
func withPrefix(prefix string, err error) error {
	var se *ShapeError
	if prefix == "" || !errors.As(err, &se) {
		return err
	}
	path := prefix
	if se.Path != "" {
		if se.Path[0] == '[' {
			path += se.Path
		} else {
			path += "." + se.Path
		}
	}
	return &ShapeError{Path: path, Message: se.Message}
}
