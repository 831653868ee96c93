package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/suggestions"
	"github.com/jonathan/resume-matcher/internal/types"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Rewrite one suggestion from reviewer feedback",
	Long: `Rewrite a pending suggestion from a suggestions file according to feedback, keeping
it addressed to the same résumé section. The suggestions file is updated in place
unless --out is given.`,
	RunE: runRefine,
}

var (
	refineSuggestionsFile string
	refineID              string
	refineFeedback        string
	refineResumeFile      string
	refineJDFile          string
	refineOutputFile      string
)

func init() {
	refineCmd.Flags().StringVarP(&refineSuggestionsFile, "suggestion", "s", "", "Path to suggestions JSON (output of suggest)")
	refineCmd.Flags().StringVar(&refineID, "id", "", "ID of the suggestion to refine (optional when the file holds one)")
	refineCmd.Flags().StringVarP(&refineFeedback, "feedback", "f", "", "What to change about the suggestion")
	refineCmd.Flags().StringVarP(&refineResumeFile, "resume", "r", "", "Path to résumé JSON")
	refineCmd.Flags().StringVarP(&refineJDFile, "jd", "j", "", "Path to job description JSON")
	refineCmd.Flags().StringVarP(&refineOutputFile, "out", "o", "", "Path to output JSON file (default: update --suggestion)")
	for _, name := range []string{"suggestion", "feedback", "resume", "jd"} {
		_ = refineCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	set, idx, err := loadSuggestion(refineSuggestionsFile, refineID)
	if err != nil {
		return err
	}
	target := &set.Suggestions[idx]
	if target.Status != "" && target.Status != types.StatusPending {
		return fmt.Errorf("suggestion %s: %w", target.ID, types.ErrSuggestionProcessed)
	}
	resume, err := loadResume(refineResumeFile)
	if err != nil {
		return err
	}
	jd, err := loadJD(refineJDFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := rt.modelClient(ctx, true)
	if err != nil {
		return err
	}
	defer closeClient(client)

	gen := suggestions.NewGenerator(client, rt.cfg.SuggestionOptions(rt.logger))
	refined, err := gen.Refine(ctx, target, refineFeedback, resume, jd)
	if err != nil {
		return err
	}
	*target = *refined

	out := refineOutputFile
	if out == "" {
		out = refineSuggestionsFile
	}
	if err := writeJSON(cmd.OutOrStdout(), out, set); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Refined suggestion %s: %s\n", refined.ID, refined.SuggestedText)
	return nil
}
