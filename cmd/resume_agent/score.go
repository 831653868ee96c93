package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a job description",
	Long: `Compute the ATS score (keywords, skills, completeness) of a résumé against a job
description. With --semantic the embedding-based fit is computed alongside it.`,
	RunE: runScore,
}

var (
	scoreResumeFile string
	scoreJDFile     string
	scoreSemantic   bool
	scoreJSON       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to résumé JSON")
	scoreCmd.Flags().StringVarP(&scoreJDFile, "jd", "j", "", "Path to job description JSON")
	scoreCmd.Flags().BoolVar(&scoreSemantic, "semantic", false, "Also compute the semantic fit (requires an API key)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	resume, err := loadResume(scoreResumeFile)
	if err != nil {
		return err
	}
	jd, err := loadJD(scoreJDFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var matcher *scoring.SemanticMatcher
	if scoreSemantic {
		client, err := rt.modelClient(ctx, true)
		if err != nil {
			return err
		}
		defer closeClient(client)
		matcher = scoring.NewSemanticMatcher(client)
	}

	ev, err := pipeline.Evaluate(ctx, matcher, resume, jd, rt.logger)
	if err != nil {
		return err
	}
	if scoreJSON {
		return writeJSON(cmd.OutOrStdout(), "", ev)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintScore(&ev.Breakdown)
	if ev.SemanticFit != nil {
		printer.PrintSemanticFit(ev.SemanticFit)
	}
	if ev.SemanticError != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: semantic fit unavailable: %s\n", ev.SemanticError)
	}
	return nil
}
