package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd",
	Short: "Parse a job posting into structured job description JSON",
	Long: `Parse a job posting from a text/HTML file or a URL into job description JSON.
URLs are fetched with job-board aware main-text extraction; set extraction.use_browser
to fall back to a headless browser for JavaScript-rendered pages.`,
	RunE: runParseJD,
}

var (
	parseJDInputFile  string
	parseJDURL        string
	parseJDOutputFile string
)

func init() {
	parseJDCmd.Flags().StringVarP(&parseJDInputFile, "in", "i", "", "Path to a posting saved as text or HTML")
	parseJDCmd.Flags().StringVarP(&parseJDURL, "url", "u", "", "URL of the job posting")
	parseJDCmd.Flags().StringVarP(&parseJDOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJDCmd.MarkFlagsMutuallyExclusive("in", "url")
	parseJDCmd.MarkFlagsOneRequired("in", "url")

	rootCmd.AddCommand(parseJDCmd)
}

// jobDocument is the parse-jd output: the parsed posting and where it came from
type jobDocument struct {
	*types.JobDescription
	Source *ingestion.Metadata `json:"source,omitempty"`
}

func runParseJD(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	var posting *ingestion.Posting
	if parseJDURL != "" {
		fetcher := fetch.New(fetch.Options{
			Timeout:    rt.cfg.Extraction.FetchTimeout,
			UseBrowser: rt.cfg.Extraction.UseBrowser,
			Logger:     rt.logger,
		})
		posting, err = ingestion.FromURL(ctx, fetcher, parseJDURL)
	} else {
		posting, err = ingestion.FromFile(parseJDInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	client, err := rt.modelClient(ctx, false)
	if err != nil {
		return err
	}
	defer closeClient(client)

	parser := parsing.NewJDParser(rt.extractionModel(client), rt.cfg.ParsingOptions(rt.logger))
	jd, issues, err := parser.ParseJD(ctx, posting.Text)
	if err != nil {
		return fmt.Errorf("failed to parse job description: %w", err)
	}
	printIssues(issues)
	if jd.RoleTitle == types.DefaultRoleTitle && posting.Meta.Title != "" {
		jd.RoleTitle = posting.Meta.Title
	}

	if err := schemas.ValidateDocument(schemas.KindJobDescription, jd); err != nil {
		return fmt.Errorf("parsed job description does not validate against schema: %w", err)
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobDescription(jd)
	}
	return writeJSON(cmd.OutOrStdout(), parseJDOutputFile, jobDocument{JobDescription: jd, Source: posting.Meta})
}
