package parsing

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/document"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ResumeParser turns résumé files and text into structured résumés
type ResumeParser struct {
	gen  llm.Generator
	docs *document.Extractor
	opts Options
}

// NewResumeParser creates a parser. A nil generator means rule-based extraction only.
func NewResumeParser(gen llm.Generator, opts Options) *ResumeParser {
	return &ResumeParser{gen: gen, docs: document.NewExtractor(), opts: opts.withDefaults()}
}

// ExtractResume reads a PDF or DOCX file and parses it. Document warnings are
// returned as issues and the DOCX run formatting is attached to the résumé.
func (p *ResumeParser) ExtractResume(ctx context.Context, path string) (*types.ResumeData, types.Issues, error) {
	doc, err := p.docs.Extract(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return p.fromDocument(ctx, doc)
}

// ExtractResumeBytes parses an uploaded document; filename selects the format.
func (p *ResumeParser) ExtractResumeBytes(ctx context.Context, data []byte, filename string) (*types.ResumeData, types.Issues, error) {
	format, err := document.FormatFromPath(filename)
	if err != nil {
		return nil, nil, err
	}
	doc, err := p.docs.ExtractBytes(ctx, data, format)
	if err != nil {
		return nil, nil, err
	}
	return p.fromDocument(ctx, doc)
}

func (p *ResumeParser) fromDocument(ctx context.Context, doc *document.Document) (*types.ResumeData, types.Issues, error) {
	resume, issues, err := p.ParseResumeText(ctx, doc.Text)
	if err != nil {
		return nil, issues, err
	}

	for _, w := range doc.Warnings {
		issues.Add("document", "%s", w)
	}
	if len(doc.Formatting) > 0 {
		resume.Formatting = map[string]any{
			"source_format": string(doc.Format),
			"paragraphs":    doc.Formatting,
		}
	}
	return resume, issues, nil
}

// ParseResumeText extracts a résumé from plain text. The model is tried first
// when configured; the rules run when it is absent, fails, or returns nothing
// usable.
func (p *ResumeParser) ParseResumeText(ctx context.Context, text string) (*types.ResumeData, types.Issues, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, &EmptyInputError{Kind: "resume"}
	}
	log := p.opts.Logger

	var issues types.Issues
	if p.gen != nil {
		resume, modelIssues, err := extractResumeWithModel(ctx, p.gen, text)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			modelUnavailable(log, "resume", err, &issues)
		case resume.Validate() != nil:
			issues = append(issues, modelIssues...)
			issues.Add("llm", "model returned no name, email, experience or education")
			log.Info("model résumé failed validation, falling back to rules")
		default:
			resume.Normalize()
			observability.ObserveExtraction("resume", "llm")
			return resume, append(issues, modelIssues...), nil
		}
	}

	resume, ruleIssues := parseResumeRules(text)
	issues = append(issues, ruleIssues...)
	resume.Normalize()

	if err := resume.Validate(); err != nil {
		return nil, issues, &UnparseableDocumentError{
			Message: "no name, email, experience or education found",
			Cause:   err,
		}
	}

	observability.ObserveExtraction("resume", "rules")
	log.Debug("rule-based résumé extraction",
		zap.String("found", describeResume(resume)),
		zap.Strings("issues", issues.Strings()))
	return resume, issues, nil
}

// IsUnparseable reports whether err means the résumé had no meaningful content
func IsUnparseable(err error) bool {
	return errors.Is(err, types.ErrUnparseable)
}
