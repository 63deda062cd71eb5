// Package diagfmt renders parse results for people and for tools: pretty
// diagnostics with source context, the JSON document, an AST tree view and
// token dumps.
package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value onto a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q (expected: auto|absolute|relative|basename)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color        bool
	Context      bool // печатать строку исходника с подчёркиванием
	PathMode     PathMode
	BaseDir      string
	Width        uint8 // максимальная ширина строки, 0 - не ограничено
	ShowWarnings bool
	Max          int // 0 - без ограничения
}

// JSONOpts configures JSON output of documents.
type JSONOpts struct {
	Indent bool
}

// FormatPath renders path according to mode. base is the directory
// relative paths are computed against; "" means the working directory.
func FormatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<stdin>"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if base == "" {
		base = "."
	}
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		baseAbs = base
	}
	switch mode {
	case PathModeAbsolute:
		return abs
	case PathModeBasename:
		return filepath.Base(abs)
	case PathModeRelative:
		if rel, err := filepath.Rel(baseAbs, abs); err == nil {
			return rel
		}
		return abs
	default:
		rel, err := filepath.Rel(baseAbs, abs)
		if err != nil || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
			return abs
		}
		return rel
	}
}
