package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// Supported reports whether the file extension can be extracted.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".pptx", ".xlsx", ".ods", ".md", ".txt":
		return true
	}
	return false
}

// Extract reads the document at path and returns its full plain text.
// Page/sheet/slide texts are concatenated with newline separators in
// order. Any parse failure is returned as an ExtractionError; an empty
// string with a nil error is a valid result (nothing to index).
func Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".pptx":
		text, err = extractPPTX(path)
	case ".xlsx":
		text, err = extractXLSX(path)
	case ".ods":
		text, err = extractODS(path)
	case ".md":
		text, err = extractMarkdown(path)
	case ".txt":
		text, err = extractText(path)
	default:
		err = fmt.Errorf("unsupported file format: %s", ext)
	}
	if err != nil {
		return "", &models.ExtractionError{Source: path, Err: err}
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}

func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return extractTagText(content, "<w:t", "</w:t>"), nil
}

func extractPPTX(path string) (string, error) {
	f, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, file := range f.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		slideText := extractTagText(string(data), "<a:t", "</a:t>")
		if strings.TrimSpace(slideText) != "" {
			text.WriteString(slideText)
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractXLSX(path string) (string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sheet := range f.Sheets {
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractODS(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractTagText pulls the text runs out of OOXML content, e.g.
// <w:t>...</w:t> for docx and <a:t>...</a:t> for pptx slides.
func extractTagText(content, openTag, closeTag string) string {
	var text strings.Builder
	for i, part := range strings.Split(content, openTag) {
		if i == 0 {
			continue
		}
		// the open tag may carry attributes before the closing '>',
		// but anything else (e.g. <w:tbl matching <w:t) is skipped
		if part == "" || (part[0] != '>' && part[0] != ' ') {
			continue
		}
		gt := strings.Index(part, ">")
		if gt < 0 {
			continue
		}
		part = part[gt+1:]
		if end := strings.Index(part, closeTag); end >= 0 {
			text.WriteString(part[:end] + " ")
		}
	}
	return text.String()
}
