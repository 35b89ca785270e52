package compiler

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout selects how generated units map to paths.
type Layout string

const (
	// Flat writes every unit into one directory as <fqn><ext>.
	Flat Layout = "flat"
	// Tree writes one directory level per namespace segment.
	Tree Layout = "tree"
)

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case Flat, Tree:
		return Layout(s), nil
	default:
		return "", fmt.Errorf("invalid layout %q, must be \"flat\" or \"tree\"", s)
	}
}

// Path returns the relative output path for the unit named fqn.
func Path(fqn string, layout Layout, ext string) string {
	if layout == Tree {
		return filepath.Join(strings.Split(fqn, ".")...) + ext
	}
	return fqn + ext
}
