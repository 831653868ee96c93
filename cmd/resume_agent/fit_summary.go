package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/suggestions"
	"github.com/jonathan/resume-matcher/internal/types"
)

var fitSummaryCmd = &cobra.Command{
	Use:   "fit-summary",
	Short: "Explain how well a résumé fits a job description",
	Long: `Score the résumé and summarize the fit in prose: strengths, gaps, overlaps and
recommendations. Without an API key a templated summary is printed.`,
	RunE: runFitSummary,
}

var (
	fitResumeFile string
	fitJDFile     string
	fitJSON       bool
)

func init() {
	fitSummaryCmd.Flags().StringVarP(&fitResumeFile, "resume", "r", "", "Path to résumé JSON")
	fitSummaryCmd.Flags().StringVarP(&fitJDFile, "jd", "j", "", "Path to job description JSON")
	fitSummaryCmd.Flags().BoolVar(&fitJSON, "json", false, "Print the result as JSON")
	_ = fitSummaryCmd.MarkFlagRequired("resume")
	_ = fitSummaryCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(fitSummaryCmd)
}

// fitReport is the fit-summary output
type fitReport struct {
	Evaluation *pipeline.Evaluation `json:"evaluation"`
	Summary    types.FitSummary     `json:"summary"`
}

func runFitSummary(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	resume, err := loadResume(fitResumeFile)
	if err != nil {
		return err
	}
	jd, err := loadJD(fitJDFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := rt.modelClient(ctx, false)
	if err != nil {
		return err
	}
	defer closeClient(client)

	var matcher *scoring.SemanticMatcher
	if client != nil {
		matcher = scoring.NewSemanticMatcher(client)
	}
	ev, err := pipeline.Evaluate(ctx, matcher, resume, jd, rt.logger)
	if err != nil {
		return err
	}

	gen := suggestions.NewGenerator(client, rt.cfg.SuggestionOptions(rt.logger))
	summary := gen.FitSummary(ctx, resume, jd, ev.Breakdown.ATSScore, ev.FitLevel())
	if fitJSON {
		return writeJSON(cmd.OutOrStdout(), "", fitReport{Evaluation: ev, Summary: summary})
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintScore(&ev.Breakdown)
	if ev.SemanticFit != nil {
		printer.PrintSemanticFit(ev.SemanticFit)
	}
	printer.PrintFitSummary(&summary)
	return nil
}
