package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Format identifies a supported source document type
type Format string

// Supported formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// scannedHint explains the usual cause of a text-less PDF
const scannedHint = "the file may be a scanned image without a text layer"

// Document is the extracted text of a source file
type Document struct {
	Text       string            `json:"text"`
	Format     Format            `json:"format"`
	Pages      int               `json:"pages,omitempty"`
	Formatting []ParagraphFormat `json:"formatting,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// converter is the raw text backend; docconv in production
type converter interface {
	PDF(r io.Reader) (string, map[string]string, error)
	DOCX(r io.Reader) (string, map[string]string, error)
}

type docconvConverter struct{}

func (docconvConverter) PDF(r io.Reader) (string, map[string]string, error) {
	return docconv.ConvertPDF(r)
}

func (docconvConverter) DOCX(r io.Reader) (string, map[string]string, error) {
	return docconv.ConvertDocx(r)
}

// Extractor reads documents with a text converter
type Extractor struct {
	conv converter
}

// NewExtractor returns an Extractor backed by docconv
func NewExtractor() *Extractor {
	return &Extractor{conv: docconvConverter{}}
}

// FormatFromPath maps a file extension to a Format. Legacy .doc files are
// handled by the DOCX reader.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// Extract reads the file at path and extracts its text.
func (e *Extractor) Extract(ctx context.Context, path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.ExtractBytes(ctx, data, format)
}

// ExtractBytes extracts text from in-memory document bytes.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte, format Format) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &EmptyDocumentError{Format: format, Reason: "the file is empty"}
	}

	switch format {
	case FormatPDF:
		return e.extractPDF(data)
	case FormatDOCX:
		return e.extractDOCX(data)
	default:
		return nil, &UnsupportedFormatError{Extension: string(format)}
	}
}

func (e *Extractor) extractPDF(data []byte) (*Document, error) {
	raw, meta, err := e.conv.PDF(bytes.NewReader(data))
	if err != nil {
		return nil, &ConversionError{Format: FormatPDF, Cause: err}
	}

	doc := &Document{Format: FormatPDF}
	pages := strings.Split(raw, "\f")
	// pdftotext terminates the last page with a form feed
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	var kept []string
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d: no extractable text", i+1))
			continue
		}
		kept = append(kept, page)
	}
	doc.Pages = len(pages)
	if n := pageCount(meta); n > doc.Pages {
		doc.Pages = n
	}

	if len(kept) == 0 {
		return nil, &EmptyDocumentError{Format: FormatPDF, Reason: scannedHint}
	}
	doc.Text = UnwrapLines(strings.Join(kept, "\n"))
	return doc, nil
}

func (e *Extractor) extractDOCX(data []byte) (*Document, error) {
	raw, _, err := e.conv.DOCX(bytes.NewReader(data))
	if err != nil {
		return nil, &ConversionError{Format: FormatDOCX, Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &EmptyDocumentError{Format: FormatDOCX, Reason: "the document has no text paragraphs"}
	}

	// DOCX paragraphs are already logical units
	doc := &Document{Format: FormatDOCX, Text: strings.TrimSpace(raw)}
	formatting, err := ReadDOCXFormatting(data)
	if err != nil {
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("formatting unavailable: %v", err))
	} else {
		doc.Formatting = formatting
	}
	return doc, nil
}

func pageCount(meta map[string]string) int {
	var n int
	if v, ok := meta["Pages"]; ok {
		_, _ = fmt.Sscanf(strings.TrimSpace(v), "%d", &n)
	}
	return n
}
