package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/preview"
)

var previewInput string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a plain-text render of a resume JSON file",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "Path to resume JSON file (required)")
	_ = previewCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	resume, err := readResumeFile(previewInput)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), preview.RenderText(preview.Render(resume)))
	return nil
}
