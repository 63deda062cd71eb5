package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talfront/internal/driver"
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] <file.tal|->",
	Short: "Print the manual transpilation of a TAL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranspile,
}

func init() {
	transpileCmd.Flags().String("target", "pseudocode", "transpile target (pseudocode|java)")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	input := args[0]
	s, err := newSession(cmd, input)
	if err != nil {
		return err
	}
	target, err := s.target(cmd)
	if err != nil {
		return err
	}
	res, err := parseInput(cmd, input, driver.Options{
		Mode:      driver.ModeTranspile,
		Target:    target,
		Generator: s.gen,
		Timings:   s.timings,
		Logger:    s.logger,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Transpiled.Render()); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), []*driver.FileResult{res})
	}
	return nil
}
