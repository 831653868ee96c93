package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/editing"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a suggestion to a résumé",
	Long: `Apply one suggestion to a résumé JSON file. With --text the suggestion is applied
with the given wording instead of its suggested text. Suggestions addressing a
section that does not exist leave the résumé unchanged; an already accepted or
rejected suggestion is refused.`,
	RunE: runApply,
}

var (
	applyResumeFile      string
	applySuggestionsFile string
	applyID              string
	applyText            string
	applyOutputFile      string
)

func init() {
	applyCmd.Flags().StringVarP(&applyResumeFile, "resume", "r", "", "Path to résumé JSON")
	applyCmd.Flags().StringVarP(&applySuggestionsFile, "suggestion", "s", "", "Path to suggestions JSON (output of suggest)")
	applyCmd.Flags().StringVar(&applyID, "id", "", "ID of the suggestion to apply (optional when the file holds one)")
	applyCmd.Flags().StringVarP(&applyText, "text", "t", "", "Apply this text instead of the suggested text")
	applyCmd.Flags().StringVarP(&applyOutputFile, "out", "o", "", "Path to output résumé JSON (default: stdout)")
	_ = applyCmd.MarkFlagRequired("resume")
	_ = applyCmd.MarkFlagRequired("suggestion")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume(applyResumeFile)
	if err != nil {
		return err
	}
	set, idx, err := loadSuggestion(applySuggestionsFile, applyID)
	if err != nil {
		return err
	}
	s := set.Suggestions[idx]

	if applyText != "" {
		err = s.Edit(applyText)
	} else {
		err = s.Accept()
	}
	if err != nil {
		return fmt.Errorf("suggestion %s: %w", s.ID, err)
	}

	if !editing.ApplyInPlace(resume, &s, s.AppliedText()) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: suggestion %s left the resume unchanged (section %q)\n", s.ID, s.SectionID)
	}
	return writeJSON(cmd.OutOrStdout(), applyOutputFile, resume)
}
