package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Extract a PDF or DOCX résumé into structured JSON",
	Long:  "Extract the text of a PDF or DOCX résumé and parse it into résumé JSON that validates against the resume schema.",
	RunE:  runExtractResume,
}

var (
	extractInputFile  string
	extractOutputFile string
)

func init() {
	extractResumeCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the résumé (.pdf or .docx)")
	extractResumeCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = extractResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	client, err := rt.modelClient(ctx, false)
	if err != nil {
		return err
	}
	defer closeClient(client)

	parser := parsing.NewResumeParser(rt.extractionModel(client), rt.cfg.ParsingOptions(rt.logger))
	resume, issues, err := parser.ExtractResume(ctx, extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to extract resume: %w", err)
	}
	printIssues(issues)

	if err := schemas.ValidateDocument(schemas.KindResume, resume); err != nil {
		return fmt.Errorf("extracted resume does not validate against schema: %w", err)
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResume(resume)
	}
	if err := writeJSON(cmd.OutOrStdout(), extractOutputFile, resume); err != nil {
		return err
	}
	if extractOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully extracted resume\nOutput: %s\n", extractOutputFile)
	}
	return nil
}
