package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schematic/internal/diagfmt"
	"schematic/internal/driver"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file.txt",
	Short: "List the numbers and symbols of a schematic",
	Long:  `Tokens prints every number token and symbol of a grid with its position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addGridFlags(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	projectCfg, err := loadProjectConfig(cmd, filePath)
	if err != nil {
		return err
	}
	opts, err := gridOptions(cmd, projectCfg)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}
	if result.Grid == nil {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errReported
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.Symbols)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.Symbols, result.FileSet)
	}
}
