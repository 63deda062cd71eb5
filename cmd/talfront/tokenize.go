package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talfront/internal/diagfmt"
	"talfront/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tal",
	Short: "Tokenize a TAL source file",
	Long:  `Tokenize breaks down a TAL source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := newSession(cmd, filePath)
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, s.maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if !s.quiet {
		for _, d := range result.Bag.Items() {
			pos := result.File.Position(d.Primary.Start)
			shown := diagfmt.FormatPath(filePath, s.pathMode, "")
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s %s: %s\n",
				shown, pos.Line, pos.Col, d.Severity, d.Code.ID(), d.Message)
		}
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.File)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%d lexical %s", result.Bag.Len(), pluralize(result.Bag.Len(), "error", "errors"))
	}
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
