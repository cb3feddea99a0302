package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/briefgest/internal/brief"
	"github.com/dgallion1/briefgest/internal/export"
	"github.com/dgallion1/briefgest/internal/pipeline"
	"github.com/dgallion1/briefgest/internal/schema"
	"github.com/dgallion1/briefgest/internal/source"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "briefctl",
		Short: "Parse Event Brief documents from the command line",
		Long: `briefctl runs the brief extraction engine over a local file
(PDF, DOCX, HTML, Markdown or plain text) and prints the result.

Example:
  briefctl parse brief.pdf --raw
  briefctl sections brief.txt
  briefctl export brief.pdf -o brief.xlsx`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Int("max-pages", 10, "Maximum pages fed to the engine (0 = no cap)")
	rootCmd.PersistentFlags().Bool("pdftotext", true, "Fall back to pdftotext when the PDF library fails")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a brief and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			includeRaw, _ := cmd.Flags().GetBool("raw")
			includePages, _ := cmd.Flags().GetBool("pages")

			parser, err := newParser(cmd, true)
			if err != nil {
				return err
			}
			parsed, err := parseFile(parser, args[0])
			if err != nil {
				return err
			}

			out := map[string]any{
				"brief":      json.RawMessage(parsed.JSON),
				"page_count": parsed.Document.PageCount(),
				"truncated":  parsed.Truncated,
			}
			if includeRaw {
				out["raw"] = parsed.Result.Canonical
			}
			if includePages {
				out["pages"] = parsed.Pages(parser.MaxPages())
			}
			return printJSON(out)
		},
	}
	cmd.Flags().Bool("raw", false, "Include the canonical text")
	cmd.Flags().Bool("pages", false, "Include per-page text")
	return cmd
}

type sectionOut struct {
	Heading string          `json:"heading"`
	Spans   []brief.RawSpan `json:"spans"`
}

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <file>",
		Short: "Print every recognized heading with its span offsets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := newParser(cmd, false)
			if err != nil {
				return err
			}
			parsed, err := parseFile(parser, args[0])
			if err != nil {
				return err
			}

			found := parser.Engine().Sections(parsed.Result.Canonical)
			out := []sectionOut{}
			for _, h := range brief.DefaultRules().Headings {
				if spans, ok := found[h.Name]; ok {
					out = append(out, sectionOut{Heading: h.Name, Spans: spans})
				}
			}
			if len(out) == 0 {
				fmt.Fprintln(os.Stderr, "no recognized headings")
			}
			return printJSON(out)
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Parse a brief and write it as an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				base := filepath.Base(args[0])
				output = base[:len(base)-len(filepath.Ext(base))] + ".xlsx"
			}

			parser, err := newParser(cmd, false)
			if err != nil {
				return err
			}
			parsed, err := parseFile(parser, args[0])
			if err != nil {
				return err
			}

			data, err := export.Workbook(filepath.Base(args[0]), parsed.Result.Brief)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("Wrote %s (confidence %d%%)\n", output, parsed.Result.Brief.Confidence.Overall)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output workbook path (default: <file>.xlsx)")
	return cmd
}

func newParser(cmd *cobra.Command, validate bool) (*pipeline.Parser, error) {
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	fallback, _ := cmd.Flags().GetBool("pdftotext")

	cfg := pipeline.ParserConfig{
		Source:   source.Options{PDFFallback: fallback},
		MaxPages: maxPages,
	}
	if validate {
		v, err := schema.New()
		if err != nil {
			return nil, err
		}
		cfg.Validator = v
	}
	return pipeline.NewParser(cfg), nil
}

func parseFile(parser *pipeline.Parser, path string) (*pipeline.Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parser.ParseFile(data, filepath.Base(path))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
