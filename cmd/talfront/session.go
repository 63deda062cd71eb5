package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"talfront/internal/diag"
	"talfront/internal/diagfmt"
	"talfront/internal/driver"
	"talfront/internal/hybrid"
	"talfront/internal/logging"
	"talfront/internal/project"
	"talfront/internal/transpile"
)

// session is what every command needs before touching sources: the
// project manifest, a logger, the generator and output preferences.
type session struct {
	manifest  *project.Manifest
	hasConfig bool
	logger    *slog.Logger
	gen       *hybrid.Generator
	warnings  []diag.Diagnostic
	color     bool
	quiet     bool
	timings   bool
	maxDiag   int
	pathMode  diagfmt.PathMode
}

// startDir is where manifest discovery begins for input.
func startDir(input string) string {
	if input == "" || input == "-" {
		wd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return wd
	}
	if st, err := os.Stat(input); err == nil && st.IsDir() {
		return input
	}
	return filepath.Dir(input)
}

func newSession(cmd *cobra.Command, input string) (*session, error) {
	root := cmd.Root().PersistentFlags()

	manifest, ok, err := project.Load(startDir(input))
	if err != nil {
		return nil, err
	}
	cfg := manifest.Config

	levelStr := cfg.Log.Level
	if root.Changed("log-level") {
		levelStr, _ = root.GetString("log-level")
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	formatStr := cfg.Log.Format
	if root.Changed("log-format") {
		formatStr, _ = root.GetString("log-format")
	}
	format, err := logging.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), level, format)
	if ok {
		logger.Debug("using manifest", "path", manifest.Path)
	}

	s := &session{manifest: manifest, hasConfig: ok, logger: logger}
	s.gen, s.warnings = driver.GeneratorFromManifest(manifest, logger)

	colorFlag, _ := root.GetString("color")
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	// fatih/color смотрит на stdout сам; явный флаг важнее
	color.NoColor = !s.color

	s.quiet, _ = root.GetBool("quiet")
	s.timings, _ = root.GetBool("timings")
	s.maxDiag = cfg.Parse.MaxDiagnostics
	if root.Changed("max-diagnostics") {
		s.maxDiag, _ = root.GetInt("max-diagnostics")
	}
	pm, _ := root.GetString("path-mode")
	if s.pathMode, err = diagfmt.ParsePathMode(pm); err != nil {
		return nil, err
	}
	return s, nil
}

// target resolves the transpile target: the flag when set, else the manifest.
func (s *session) target(cmd *cobra.Command) (transpile.Target, error) {
	value := s.manifest.Config.Transpile.Target
	if f := cmd.Flags().Lookup("target"); f != nil && f.Changed {
		value = f.Value.String()
	}
	return transpile.ParseTarget(value)
}

// jobs resolves the worker count: the flag when set, else the manifest.
func (s *session) jobs(cmd *cobra.Command) int {
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt("jobs")
		return n
	}
	return s.manifest.Config.Parse.Jobs
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:        s.color,
		Context:      true,
		PathMode:     s.pathMode,
		ShowWarnings: true,
		Max:          s.maxDiag,
	}
}

// report prints the diagnostics and the coverage line of res to stderr.
func (s *session) report(cmd *cobra.Command, res *driver.FileResult) {
	if res == nil || res.Doc == nil || s.quiet {
		return
	}
	out := cmd.ErrOrStderr()
	opts := s.prettyOpts()
	diagfmt.Pretty(out, res.Path, res.Doc, res.Lines(), opts)
	diagfmt.Summary(out, res.Path, res.Doc, opts)
}

// attachWarnings copies configuration warnings into a freshly produced document.
func (s *session) attachWarnings(res *driver.FileResult) {
	if res != nil && res.Doc != nil && len(s.warnings) > 0 {
		res.Doc.AddWarnings(s.warnings)
	}
}
