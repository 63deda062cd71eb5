package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"talfront/internal/diagfmt"
	"talfront/internal/driver"
	"talfront/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file.tal|directory>",
	Short: "Re-parse TAL sources whenever they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("mode", "ast", "what to produce on each change (ast|transpile|hybrid)")
	watchCmd.Flags().String("target", "pseudocode", "transpile target (pseudocode|java)")
	watchCmd.Flags().Bool("write", false, "write output files on each change")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-parsing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	flags := cmd.Flags()
	modeStr, _ := flags.GetString("mode")
	mode, err := driver.ParseMode(modeStr)
	if err != nil {
		return err
	}
	write, _ := flags.GetBool("write")
	debounce, _ := flags.GetDuration("debounce")

	s, err := newSession(cmd, input)
	if err != nil {
		return err
	}
	target, err := s.target(cmd)
	if err != nil {
		return err
	}
	opts := driver.Options{Mode: mode, Target: target, Generator: s.gen, Logger: s.logger}
	wopts := driver.WriteOptions{Mode: mode}

	onChange := func(paths []string) {
		results, err := driver.ParseFiles(cmd.Context(), paths, opts)
		if err != nil {
			s.logger.Error("re-parse failed", "err", err)
			return
		}
		for _, res := range results {
			if res.Err != nil {
				// файл могли удалить между событием и чтением
				if !errors.Is(res.Err, fs.ErrNotExist) {
					s.logger.Warn("re-parse failed", "file", res.Path, "err", res.Err)
				}
				continue
			}
			s.attachWarnings(res)
			if res.Doc != nil {
				s.logger.Info("parsed", "file", res.Path, "coverage", res.Doc.CoverageText(), "errors", len(res.Doc.Errors))
				diagfmt.Summary(cmd.OutOrStdout(), res.Path, res.Doc, s.prettyOpts())
			}
			if write {
				written, err := driver.WriteOutputs(res, wopts)
				if err != nil {
					s.logger.Error("write failed", "file", res.Path, "err", err)
					continue
				}
				s.logger.Info("written", "ast", written.AST, "code", written.Code)
			}
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (Ctrl-C to stop)\n", input)
	return watch.Run(cmd.Context(), watch.Config{
		Path:     input,
		Debounce: debounce,
		Match:    driver.IsSource,
		Logger:   s.logger,
	}, onChange)
}
