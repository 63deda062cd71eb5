// Package project locates and decodes the talfront.toml manifest.
package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded talfront.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest sections. Keys missing from the file keep
// the values of Default().
type Config struct {
	Patterns  PatternsConfig  `toml:"patterns"`
	Parse     ParseConfig     `toml:"parse"`
	Transpile TranspileConfig `toml:"transpile"`
	Log       LogConfig       `toml:"log"`
}

type PatternsConfig struct {
	File    string `toml:"file"`
	Builtin bool   `toml:"builtin"`
}

type ParseConfig struct {
	CommentMarkers []string `toml:"comment_markers"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
}

type TranspileConfig struct {
	Target string `toml:"target"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultPatternsFile is the pattern table looked up when the manifest
// does not name one.
const DefaultPatternsFile = "tal_codepairs.json"

// Default returns the configuration used without a manifest.
func Default() Config {
	return Config{
		Patterns:  PatternsConfig{File: DefaultPatternsFile, Builtin: true},
		Parse:     ParseConfig{CommentMarkers: []string{"!", "--"}, MaxDiagnostics: 100},
		Transpile: TranspileConfig{Target: "pseudocode"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load finds the manifest above startDir and decodes it. ok is false when
// there is no manifest; the returned manifest then carries Default() and
// is rooted at startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return nil, false, fmt.Errorf("failed to resolve start directory: %w", absErr)
		}
		return &Manifest{Root: root, Config: Default()}, false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes one manifest file over Default().
func LoadConfig(path string) (Config, error) {
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := Default()
	if meta.IsDefined("patterns", "file") {
		cfg.Patterns.File = strings.TrimSpace(raw.Patterns.File)
	}
	if meta.IsDefined("patterns", "builtin") {
		cfg.Patterns.Builtin = raw.Patterns.Builtin
	}
	if meta.IsDefined("parse", "comment_markers") {
		cfg.Parse.CommentMarkers = raw.Parse.CommentMarkers
	}
	if meta.IsDefined("parse", "max_diagnostics") {
		if raw.Parse.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
		}
		cfg.Parse.MaxDiagnostics = raw.Parse.MaxDiagnostics
	}
	if meta.IsDefined("parse", "jobs") {
		cfg.Parse.Jobs = raw.Parse.Jobs
	}
	if meta.IsDefined("transpile", "target") {
		cfg.Transpile.Target = strings.ToLower(strings.TrimSpace(raw.Transpile.Target))
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = raw.Log.Level
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = raw.Log.Format
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// PatternsPath resolves the pattern file against the manifest root. It
// returns "" when no file is configured.
func (m *Manifest) PatternsPath() string {
	if m == nil || m.Config.Patterns.File == "" {
		return ""
	}
	p := filepath.FromSlash(m.Config.Patterns.File)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// Encode renders cfg as TOML, used by "talfront init".
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
