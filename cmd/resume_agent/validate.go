package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a bundled schema",
	Long:  "Validate a résumé, job description or suggestions JSON file against its bundled JSON Schema.",
	RunE:  runValidate,
}

var (
	validateSchema    string
	validateInputFile string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema to validate against: resume, job_description or suggestions")
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to JSON file to validate")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	kind, err := schemas.ParseKind(validateSchema)
	if err != nil {
		return err
	}

	if err := schemas.ValidateFile(kind, validateInputFile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
			return fmt.Errorf("%s is not a valid %s document", validateInputFile, kind)
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", validateInputFile, kind)
	return nil
}
