package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfchat/internal/log"
	"pdfchat/internal/models"
	"pdfchat/internal/types"
)

// Loader extracts plain text from PDF files on disk.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the PDF at path and returns its extracted text. The
// document source is the file's base name. Unreadable, non-PDF and
// textless files are input errors.
func (l *Loader) Load(ctx context.Context, path string) (*models.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: pdf file not found: %s", types.ErrInput, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a pdf file", types.ErrInput, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s is not a pdf file", types.ErrInput, path)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening pdf %s: %v", types.ErrInput, path, err)
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: extracting text from %s: %v", types.ErrInput, path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("%w: reading text from %s: %v", types.ErrInput, path, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no extractable text in %s", types.ErrInput, path)
	}

	doc := &models.Document{
		Source: filepath.Base(path),
		Text:   text,
		Pages:  reader.NumPage(),
	}
	log.Debug("pdf loaded", "source", doc.Source, "pages", doc.Pages, "chars", len(doc.Text))

	return doc, nil
}
