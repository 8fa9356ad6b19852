package rag

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of an uploaded document. Supported
// extensions are .txt and .pdf; anything else is a validation error.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	case ".pdf":
		return extractPDF(data)
	default:
		return "", &domain.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported file type %q, allowed: .pdf, .txt", filepath.Ext(filename)),
		}
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than losing the document
			continue
		}
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String()), nil
}
