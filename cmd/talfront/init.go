package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"talfront/internal/preproc"
	"talfront/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a talfront project",
	Long: `Initialize a talfront project by creating a manifest (talfront.toml) and
an example pattern table (tal_codepairs.json) holding the built-in
multi-line patterns. If [path] is omitted, initializes the current
directory; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized talfront project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if created {
		fmt.Fprintf(out, "  - %s\n", project.DefaultPatternsFile)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", project.DefaultPatternsFile)
	}
	return nil
}

// initProject writes the manifest and, unless one exists, the example
// pattern table into target. It refuses to overwrite a manifest. The
// manifest turns the compiled-in patterns off since the table carries them.
func initProject(target string) (createdPatterns bool, err error) {
	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return false, fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return false, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	// таблица из init уже содержит встроенные шаблоны
	cfg := project.Default()
	cfg.Patterns.Builtin = false
	manifest, err := project.Encode(cfg)
	if err != nil {
		return false, err
	}
	manifest = append([]byte("# talfront project manifest\n"), manifest...)
	if err := os.WriteFile(manifestPath, manifest, 0o644); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}

	patternsPath := filepath.Join(target, project.DefaultPatternsFile)
	if _, err := os.Stat(patternsPath); err == nil {
		return false, nil
	}
	data, err := json.MarshalIndent(preproc.Builtin().Patterns(), "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(patternsPath, append(data, '\n'), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", project.DefaultPatternsFile, err)
	}
	return true, nil
}
