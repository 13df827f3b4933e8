// Package analyze implements the analyze command: run the structure
// analysis on a page and render the report.
package analyze

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/russellbomer/domsift/internal/analyzer"
	"github.com/russellbomer/domsift/internal/config"
	"github.com/russellbomer/domsift/internal/fetcher"
	"github.com/russellbomer/domsift/internal/logger"
	"github.com/russellbomer/domsift/internal/output"
)

// Command returns the analyze command.
func Command() *cobra.Command {
	var (
		filePath string
		pageURL  string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the repeating structure of an HTML page",
		Long: `Analyze reads HTML from --file, --url, or stdin, runs the structure
analysis, and prints the report. Formats: json (default), yaml, table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			rawHTML, err := readInput(filePath, pageURL, cfg, log)
			if err != nil {
				return err
			}

			report, err := analyzer.New(log).Analyze(rawHTML)
			if err != nil {
				return fmt.Errorf("analyze document: %w", err)
			}

			return output.Render(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "HTML file to analyze")
	cmd.Flags().StringVarP(&pageURL, "url", "u", "", "URL to fetch and analyze")
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json, yaml, or table")

	return cmd
}

// readInput loads HTML from a file, a URL, or stdin, in that priority.
func readInput(filePath, pageURL string, cfg *config.Config, log logger.Interface) (string, error) {
	switch {
	case filePath != "" && pageURL != "":
		return "", errors.New("--file and --url are mutually exclusive")
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filePath, err)
		}
		return string(data), nil
	case pageURL != "":
		return fetcher.New(cfg.Fetcher, log).Fetch(pageURL)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
