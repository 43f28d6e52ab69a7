package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/types"
)

var (
	exportInput  string
	exportOutput string
	exportChrome string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a resume JSON file to PDF",
	Long:  `Read a resume document from a JSON file, lay it out on A4 pages, and print it to PDF with a headless browser.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output PDF path (defaults to the candidate name)")
	exportCmd.Flags().StringVar(&exportChrome, "chrome", "", "Path to the Chrome binary (optional)")
	_ = exportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	resume, err := readResumeFile(exportInput)
	if err != nil {
		return err
	}

	svc := export.NewService(nil, export.NewPDFRenderer(exportChrome))
	pdf, err := svc.ExportPDF(context.Background(), resume)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	output := exportOutput
	if output == "" {
		output = export.Filename(resume)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	log.Printf("Wrote %s (%d bytes)", output, len(pdf))
	return nil
}

// readResumeFile loads and normalizes a resume document from disk.
func readResumeFile(path string) (*types.ResumeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var resume types.ResumeData
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	resume.Normalize()
	return &resume, nil
}
