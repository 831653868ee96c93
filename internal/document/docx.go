package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParagraphFormat is the style of one DOCX paragraph, keyed by its position
// in the document body.
type ParagraphFormat struct {
	Index int         `json:"index"`
	Style string      `json:"style,omitempty"`
	Runs  []RunFormat `json:"runs"`
}

// RunFormat is the character formatting of one text run
type RunFormat struct {
	Text     string  `json:"text"`
	Bold     bool    `json:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty"`
	FontName string  `json:"font_name,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
}

type wordDocument struct {
	Body struct {
		Paragraphs []wordParagraph `xml:"p"`
	} `xml:"body"`
}

type wordParagraph struct {
	Props *struct {
		Style *wordVal `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Props *struct {
		Bold   *wordVal `xml:"b"`
		Italic *wordVal `xml:"i"`
		Fonts  *struct {
			ASCII string `xml:"ascii,attr"`
		} `xml:"rFonts"`
		Size *wordVal `xml:"sz"`
	} `xml:"rPr"`
	Text []string `xml:"t"`
}

type wordVal struct {
	Val string `xml:"val,attr"`
}

// on reports whether a toggle property is set; <w:b/> without a value means on
func (v *wordVal) on() bool {
	if v == nil {
		return false
	}
	switch strings.ToLower(v.Val) {
	case "0", "false", "off":
		return false
	}
	return true
}

// ReadDOCXFormatting reads per-paragraph run formatting from word/document.xml.
// Paragraphs without text are skipped but keep their position in Index.
func ReadDOCXFormatting(data []byte) ([]ParagraphFormat, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a docx archive: %w", err)
	}

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open document.xml: %w", err)
			}
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("word/document.xml not found")
	}
	defer func() { _ = body.Close() }()

	var doc wordDocument
	if err := xml.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document.xml: %w", err)
	}

	var out []ParagraphFormat
	for i, p := range doc.Body.Paragraphs {
		pf := ParagraphFormat{Index: i}
		if p.Props != nil && p.Props.Style != nil {
			pf.Style = p.Props.Style.Val
		}
		for _, r := range p.Runs {
			text := strings.Join(r.Text, "")
			if text == "" {
				continue
			}
			rf := RunFormat{Text: text}
			if r.Props != nil {
				rf.Bold = r.Props.Bold.on()
				rf.Italic = r.Props.Italic.on()
				if r.Props.Fonts != nil {
					rf.FontName = r.Props.Fonts.ASCII
				}
				if r.Props.Size != nil {
					// sz is in half-points
					if hp, err := strconv.ParseFloat(r.Props.Size.Val, 64); err == nil {
						rf.FontSize = hp / 2
					}
				}
			}
			pf.Runs = append(pf.Runs, rf)
		}
		if len(pf.Runs) > 0 {
			out = append(out, pf)
		}
	}
	return out, nil
}
