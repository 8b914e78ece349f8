// Package pdf extracts plain text from uploaded resume files.
package pdf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
)

// ExtractText pulls the text of every page from a PDF, joined with blank
// lines between pages.
func ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return strings.Join(pages, "\n\n"), nil
}

// IsPDF reports whether data starts with the PDF magic header.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// ExtractResumeText returns the plain text of an uploaded resume. PDFs go
// through the renderer; anything else must already be valid UTF-8 text.
func ExtractResumeText(data []byte) (string, error) {
	if IsPDF(data) {
		return ExtractText(data)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is neither a PDF nor valid UTF-8 text")
	}
	return string(data), nil
}
