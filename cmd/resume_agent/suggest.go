package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/suggestions"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest résumé edits for a job description",
	Long: `Generate prioritized, section-addressed edit suggestions for a résumé against a job
description. Without an API key only skill gap suggestions are produced.`,
	RunE: runSuggest,
}

var (
	suggestResumeFile string
	suggestJDFile     string
	suggestMax        int
	suggestFeedback   string
	suggestOutputFile string
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestResumeFile, "resume", "r", "", "Path to résumé JSON")
	suggestCmd.Flags().StringVarP(&suggestJDFile, "jd", "j", "", "Path to job description JSON")
	suggestCmd.Flags().IntVar(&suggestMax, "max", 0, "Maximum number of suggestions (default from config)")
	suggestCmd.Flags().StringVar(&suggestFeedback, "feedback", "", "Feedback on earlier suggestions to steer this batch")
	suggestCmd.Flags().StringVarP(&suggestOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = suggestCmd.MarkFlagRequired("resume")
	_ = suggestCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	if suggestMax < 0 {
		return fmt.Errorf("--max must be non-negative")
	}
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	resume, err := loadResume(suggestResumeFile)
	if err != nil {
		return err
	}
	jd, err := loadJD(suggestJDFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := rt.modelClient(ctx, false)
	if err != nil {
		return err
	}
	defer closeClient(client)

	maxCount := suggestMax
	if maxCount == 0 {
		maxCount = rt.cfg.Suggestions.MaxCount
	}
	gen := suggestions.NewGenerator(client, rt.cfg.SuggestionOptions(rt.logger))
	set, err := gen.GenerateWithFeedback(ctx, resume, jd, maxCount, suggestFeedback)
	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.KindSuggestions, set); err != nil {
		return fmt.Errorf("generated suggestions do not validate against schema: %w", err)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSuggestions(set)
	}
	return writeJSON(cmd.OutOrStdout(), suggestOutputFile, set)
}
