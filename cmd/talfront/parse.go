package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"talfront/internal/diagfmt"
	"talfront/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.tal|->",
	Short: "Build the hybrid AST document of a TAL file",
	Long: `Parse runs the hybrid assembler over one TAL file (or stdin) and prints
the resulting document. Diagnostics and the coverage line go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "json", "output format (json|tree|summary|none)")
	parseCmd.Flags().Bool("compact", false, "print JSON on one line")
	parseCmd.Flags().Bool("llm-payload", false, "wrap the document in the documentation pipeline payload")
	parseCmd.Flags().Int("depth", 0, "tree depth limit for --format tree (0 = unlimited)")
	parseCmd.Flags().Bool("attrs", false, "show node attributes in --format tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	compact, _ := cmd.Flags().GetBool("compact")
	payload, _ := cmd.Flags().GetBool("llm-payload")
	depth, _ := cmd.Flags().GetInt("depth")
	attrs, _ := cmd.Flags().GetBool("attrs")

	s, err := newSession(cmd, input)
	if err != nil {
		return err
	}
	opts := driver.Options{
		Mode:      driver.ModeAST,
		Generator: s.gen,
		Timings:   s.timings,
		Logger:    s.logger,
	}
	res, err := parseInput(cmd, input, opts)
	if err != nil {
		return err
	}
	s.attachWarnings(res)
	s.report(cmd, res)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if payload {
			err = diagfmt.WritePayload(out, diagfmt.NewLLMPayload(res.Doc))
		} else {
			err = diagfmt.WriteDocument(out, res.Doc, diagfmt.JSONOpts{Indent: !compact})
		}
	case "tree":
		err = diagfmt.FormatTree(out, res.Doc.Root, diagfmt.TreeOpts{MaxDepth: depth, ShowAttrs: attrs})
	case "summary":
		diagfmt.Summary(out, res.Path, res.Doc, s.prettyOpts())
	case "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), []*driver.FileResult{res})
	}
	return nil
}

// parseInput parses a file, or stdin when input is "-".
func parseInput(cmd *cobra.Command, input string, opts driver.Options) (*driver.FileResult, error) {
	if input == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return driver.ParseBytes(cmd.Context(), "", src, opts)
	}
	if st, err := os.Stat(input); err == nil && st.IsDir() {
		return nil, fmt.Errorf("%s is a directory; use \"talfront run\" for batches", input)
	}
	return driver.Parse(cmd.Context(), input, opts)
}
