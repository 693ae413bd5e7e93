package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DocumentExtractor turns uploaded resume/JD files into text the extraction
// model can consume. PDF content is detected and left intact so callers can
// route it through the multimodal path instead of text extraction.
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ReadUpload reads the full upload into memory
func (e *DocumentExtractor) ReadUpload(file multipart.File) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return buf.Bytes(), nil
}

// IsPDF reports whether the content carries the PDF magic header
func (e *DocumentExtractor) IsPDF(content []byte) bool {
	return bytes.HasPrefix(content, []byte("%PDF"))
}

// ExtractText extracts plain text from uploaded content based on the file
// extension. PDF callers should prefer IsPDF plus the multimodal extraction
// path; this fallback keeps only printable characters.
func (e *DocumentExtractor) ExtractText(content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt", "":
		return string(content), nil

	case ".pdf":
		return e.printableText(content), nil

	case ".doc", ".docx":
		if len(content) > 2 && content[0] == 'P' && content[1] == 'K' {
			// DOCX is a ZIP archive; without unzipping we cannot recover
			// the document XML reliably.
			return "", fmt.Errorf("docx extraction unsupported, upload PDF or plain text")
		}
		return e.printableText(content), nil

	default:
		return string(content), nil
	}
}

// printableText strips binary noise and keeps readable ASCII
func (e *DocumentExtractor) printableText(content []byte) string {
	var sb strings.Builder
	for _, r := range string(content) {
		if (r >= 32 && r <= 126) || r == '\n' || r == '\r' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsSupportedFormat checks if the file format is supported
func (e *DocumentExtractor) IsSupportedFormat(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".pdf", ".doc", ".docx":
		return true
	}
	return false
}
