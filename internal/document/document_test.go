package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	text string
	meta map[string]string
	err  error
}

func (f fakeConverter) PDF(_ io.Reader) (string, map[string]string, error) {
	return f.text, f.meta, f.err
}

func (f fakeConverter) DOCX(_ io.Reader) (string, map[string]string, error) {
	return f.text, f.meta, f.err
}

func TestExtractBytes_EmptyPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractBytes(context.Background(), nil, FormatPDF)

	require.Error(t, err)
	var emptyErr *EmptyDocumentError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, FormatPDF, emptyErr.Format)
	assert.Contains(t, err.Error(), "no extractable text")
}

func TestExtractBytes_PDFPages(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantErr      bool
		wantWarnings int
		wantText     string
	}{
		{
			name:     "single page",
			text:     "Jane Doe\n\nEXPERIENCE\n",
			wantText: "Jane Doe\nEXPERIENCE",
		},
		{
			name:         "blank middle page warns",
			text:         "Page one.\f\f\nPage three.\f",
			wantWarnings: 1,
			wantText:     "Page one.\nPage three.",
		},
		{
			name:    "all pages blank",
			text:    "  \f \n\f",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Extractor{conv: fakeConverter{text: tt.text}}

			doc, err := e.ExtractBytes(context.Background(), []byte("%PDF-1.4"), FormatPDF)

			if tt.wantErr {
				var emptyErr *EmptyDocumentError
				require.ErrorAs(t, err, &emptyErr)
				assert.Contains(t, err.Error(), "scanned image")
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc.Warnings, tt.wantWarnings)
			assert.Equal(t, tt.wantText, doc.Text)
		})
	}
}

func TestExtractBytes_PagesFromMeta(t *testing.T) {
	e := &Extractor{conv: fakeConverter{text: "Some text", meta: map[string]string{"Pages": "3"}}}

	doc, err := e.ExtractBytes(context.Background(), []byte("%PDF"), FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, 3, doc.Pages)
}

func TestExtractBytes_ConverterError(t *testing.T) {
	e := &Extractor{conv: fakeConverter{err: errors.New("pdftotext not found")}}

	_, err := e.ExtractBytes(context.Background(), []byte("%PDF"), FormatPDF)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, err.Error(), "pdftotext not found")
}

func TestExtractBytes_DOCXWithoutArchiveWarns(t *testing.T) {
	e := &Extractor{conv: fakeConverter{text: "Jane Doe\njane@example.com"}}

	doc, err := e.ExtractBytes(context.Background(), []byte("not a zip"), FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@example.com", doc.Text)
	require.Len(t, doc.Warnings, 1)
	assert.Contains(t, doc.Warnings[0], "formatting unavailable")
}

func TestExtractBytes_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().ExtractBytes(ctx, []byte("x"), FormatPDF)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"resume.pdf", FormatPDF, false},
		{"Resume.PDF", FormatPDF, false},
		{"resume.docx", FormatDOCX, false},
		{"resume.doc", FormatDOCX, false},
		{"resume.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				assert.ErrorAs(t, err, &unsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewExtractor().Extract(context.Background(), path)

	var emptyErr *EmptyDocumentError
	assert.ErrorAs(t, err, &emptyErr)
}

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Title"/></w:pPr>
      <w:r><w:rPr><w:b/><w:rFonts w:ascii="Calibri"/><w:sz w:val="32"/></w:rPr><w:t>Jane Doe</w:t></w:r>
    </w:p>
    <w:p/>
    <w:p>
      <w:r><w:rPr><w:i/><w:b w:val="0"/></w:rPr><w:t>Senior </w:t><w:t>Engineer</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, xml string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadDOCXFormatting(t *testing.T) {
	paragraphs, err := ReadDOCXFormatting(buildDOCX(t, documentXML))

	require.NoError(t, err)
	require.Len(t, paragraphs, 2)

	assert.Equal(t, 0, paragraphs[0].Index)
	assert.Equal(t, "Title", paragraphs[0].Style)
	assert.Equal(t, RunFormat{Text: "Jane Doe", Bold: true, FontName: "Calibri", FontSize: 16}, paragraphs[0].Runs[0])

	assert.Equal(t, 2, paragraphs[1].Index)
	assert.Equal(t, RunFormat{Text: "Senior Engineer", Italic: true}, paragraphs[1].Runs[0])
}

func TestReadDOCXFormatting_MissingPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	require.NoError(t, zw.Close())

	_, err := ReadDOCXFormatting(buf.Bytes())

	assert.ErrorContains(t, err, "document.xml not found")
}
