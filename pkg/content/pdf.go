package content

import (
	"bytes"
	"errors"
	"io"

	"github.com/ledongthuc/pdf"
)

var (
	errEmptyPDFPath    = errors.New("pdf path is empty")
	errNilSourceReader = errors.New("pdf source reader is nil")
	errEmptyPDFContent = errors.New("pdf content is empty")
)

// IsPDF reports whether a response looks like a PDF document, by content
// type or by the %PDF magic bytes.
func IsPDF(contentType string, body []byte) bool {
	if bytes.HasPrefix(bytes.ToLower([]byte(contentType)), []byte("application/pdf")) {
		return true
	}
	return bytes.HasPrefix(body, []byte("%PDF-"))
}

// ExtractTextFromPDFFile extracts the plain text of a PDF on disk. Manual
// sources use it for scanned circulars dropped next to the inputs file.
func ExtractTextFromPDFFile(path string) (string, error) {
	if path == "" {
		return "", errEmptyPDFPath
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return extractTextFromPDFDocument(reader)
}

// ExtractTextFromPDFReader extracts text from a PDF held in memory, such as
// a circular linked from a college notice board.
func ExtractTextFromPDFReader(r io.Reader) (string, error) {
	if r == nil {
		return "", errNilSourceReader
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errEmptyPDFContent
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return extractTextFromPDFDocument(doc)
}

func extractTextFromPDFDocument(doc *pdf.Reader) (string, error) {
	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}
	return tidy(buf.String()), nil
}
