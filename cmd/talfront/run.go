package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"talfront/internal/diagfmt"
	"talfront/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.tal|directory>",
	Short: "Parse and/or transpile TAL sources and write the results",
	Long: `Run processes a TAL file or every *.tal/*.txt file of a directory.

Modes:
  ast        write <base>_ast.json (default)
  transpile  write <base>_pseudocode.txt or <base>.java
  hybrid     write both; the code file names the AST file in its header`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("mode", "ast", "what to produce (ast|transpile|hybrid)")
	runCmd.Flags().String("target", "pseudocode", "transpile target (pseudocode|java)")
	runCmd.Flags().Bool("stdout", false, "print results instead of writing files")
	runCmd.Flags().Bool("llm-payload", false, "write the AST file as the documentation pipeline payload")
	runCmd.Flags().String("out-dir", "", "directory for output files (default: next to each input)")
	runCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	runCmd.Flags().Bool("cache", false, "reuse documents from the disk cache")
	runCmd.Flags().Bool("drop-cache", false, "clear the disk cache before running")
	runCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// errorsShown is how many errors of a document the run report lists.
const errorsShown = 5

func runRun(cmd *cobra.Command, args []string) error {
	input := args[0]
	flags := cmd.Flags()
	modeStr, _ := flags.GetString("mode")
	mode, err := driver.ParseMode(modeStr)
	if err != nil {
		return err
	}
	toStdout, _ := flags.GetBool("stdout")
	payload, _ := flags.GetBool("llm-payload")
	outDir, _ := flags.GetString("out-dir")
	useCache, _ := flags.GetBool("cache")
	dropCache, _ := flags.GetBool("drop-cache")
	uiFlag, _ := flags.GetString("ui")
	uiSel, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, input)
	if err != nil {
		return err
	}
	target, err := s.target(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Mode:      mode,
		Target:    target,
		Generator: s.gen,
		Timings:   s.timings,
		Jobs:      s.jobs(cmd),
		Logger:    s.logger,
	}
	if useCache || dropCache {
		cache, err := driver.OpenDiskCache("talfront")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("drop cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	info, err := os.Stat(input)
	if err != nil {
		return err
	}
	wopts := driver.WriteOptions{Mode: mode, OutDir: outDir, LLMPayload: payload}
	if !info.IsDir() {
		return runOne(cmd, s, input, opts, wopts, toStdout)
	}
	return runDir(cmd, s, input, opts, wopts, uiSel)
}

func runOne(cmd *cobra.Command, s *session, path string, opts driver.Options, wopts driver.WriteOptions, toStdout bool) error {
	out := cmd.OutOrStdout()
	if !s.quiet && !toStdout {
		fmt.Fprintf(out, "Reading TAL source from: %s\n", path)
		fmt.Fprintf(out, "Mode: %s\n", opts.Mode)
		if opts.Mode != driver.ModeAST {
			fmt.Fprintf(out, "Target Language for Transpilation: %s\n", opts.Target)
		}
		fmt.Fprintln(out, strings.Repeat("=", 50))
	}

	res, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	s.attachWarnings(res)

	if toStdout {
		s.report(cmd, res)
		if err := printResult(out, res, wopts.LLMPayload); err != nil {
			return err
		}
	} else {
		written, err := driver.WriteOutputs(res, wopts)
		if err != nil {
			return err
		}
		if !s.quiet {
			printRunReport(out, res, written)
			if res.Doc != nil {
				diagfmt.Pretty(cmd.ErrOrStderr(), res.Path, res.Doc, res.Lines(), s.prettyOpts())
			}
		}
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), []*driver.FileResult{res})
	}
	return nil
}

// printResult writes the document and/or the transpiled code to w.
func printResult(w io.Writer, res *driver.FileResult, payload bool) error {
	if res.Doc != nil {
		var err error
		if payload {
			err = diagfmt.WritePayload(w, diagfmt.NewLLMPayload(res.Doc))
		} else {
			err = diagfmt.WriteDocument(w, res.Doc, diagfmt.JSONOpts{Indent: true})
		}
		if err != nil {
			return err
		}
	}
	if res.Transpiled != nil {
		if _, err := fmt.Fprintln(w, res.Transpiled.Render()); err != nil {
			return err
		}
	}
	return nil
}

// printRunReport prints what was written and a short account of the document.
func printRunReport(w io.Writer, res *driver.FileResult, written driver.Outputs) {
	if written.AST != "" && res.Doc != nil {
		doc := res.Doc
		fmt.Fprintf(w, "AST saved to: %s\n", written.AST)
		fmt.Fprintf(w, "  Source: %s\n", doc.Source)
		fmt.Fprintf(w, "  Success: %t\n", doc.Success)
		fmt.Fprintf(w, "  Coverage: %s\n", doc.CoverageText())
		if res.Cached {
			fmt.Fprintln(w, "  (from cache)")
		}
		if n := len(doc.Errors); n > 0 {
			fmt.Fprintf(w, "  Errors: %d\n", n)
			for _, e := range doc.Errors[:min(n, errorsShown)] {
				fmt.Fprintf(w, "    Line %d: %s\n", e.Line, e.Message)
			}
			if n > errorsShown {
				fmt.Fprintf(w, "    ... and %d more errors\n", n-errorsShown)
			}
		}
	}
	if written.Code != "" {
		fmt.Fprintf(w, "Transpiled code saved to: %s\n", written.Code)
	}
}

func runDir(cmd *cobra.Command, s *session, dir string, opts driver.Options, wopts driver.WriteOptions, uiSel uiMode) error {
	files, err := driver.ListSources(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no TAL sources under %s", dir)
	}

	var results []*driver.FileResult
	if shouldUseTUI(uiSel) && !s.quiet {
		results, err = runBatchWithUI(cmd.Context(), "talfront "+string(opts.Mode), files, opts)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed, withErrors int
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, res.Err)
			continue
		}
		s.attachWarnings(res)
		written, err := driver.WriteOutputs(res, wopts)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, err)
			continue
		}
		if res.Doc != nil {
			if !res.Doc.Success {
				withErrors++
			}
			if !s.quiet {
				diagfmt.Summary(out, res.Path, res.Doc, s.prettyOpts())
			}
		} else if !s.quiet && written.Code != "" {
			fmt.Fprintf(out, "%s -> %s\n", res.Path, written.Code)
		}
	}
	if !s.quiet {
		fmt.Fprintf(out, "%d files, %d with errors, %d failed\n", len(results), withErrors, failed)
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
