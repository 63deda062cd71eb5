package preproc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// TypeMultiLine is the only pattern type the preprocessor acts on.
const TypeMultiLine = "multi_line_construct"

// Pattern is one record of a pattern configuration file.
type Pattern struct {
	ID         string `json:"id" yaml:"id" toml:"id"`
	Type       string `json:"type" yaml:"type" toml:"type"`
	StartRegex string `json:"match_pattern_start" yaml:"match_pattern_start" toml:"match_pattern_start"`
	Handler    string `json:"handler" yaml:"handler" toml:"handler"`
}

// Format is the encoding of a pattern file.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// FormatOf picks the format from the file extension. Unknown extensions are
// read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

type patternFile struct {
	Patterns []Pattern `json:"patterns" yaml:"patterns" toml:"patterns"`
}

// Decode reads pattern records. JSON and YAML accept either a top-level list
// or an object with a "patterns" list; TOML uses [[patterns]] tables.
func Decode(data []byte, format Format) ([]Pattern, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		var f patternFile
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return f.Patterns, nil
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]Pattern, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty pattern file")
	}
	if trimmed[0] == '[' {
		var list []Pattern
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return list, nil
	}
	var f patternFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return f.Patterns, nil
}

func decodeYAML(data []byte) ([]Pattern, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty pattern file")
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []Pattern
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("line %d: %w", root.Line, err)
		}
		return list, nil
	}
	var f patternFile
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("line %d: %w", root.Line, err)
	}
	return f.Patterns, nil
}
