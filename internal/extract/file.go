// Package extract turns source material (documents, URLs, pasted text)
// into raw text for the rewrite pipeline. Extraction is best-effort:
// every failure degrades to an empty string and never crosses the
// package boundary as an error.
package extract

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

const (
	// mergedTextMaxChars bounds the combined extraction output before
	// it reaches the prompt builder.
	mergedTextMaxChars = 60000

	// pdfMaxPages caps page-wise extraction on pathological documents.
	pdfMaxPages = 50

	fetchTimeout = 20 * time.Second
)

type Extractor struct {
	client *http.Client
	log    *slog.Logger
}

func New(log *slog.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// FromFile extracts text from a single document, dispatching on the
// lowercased file extension. Unknown extensions are read as UTF-8 text.
func (e *Extractor) FromFile(ctx context.Context, path string) string {
	lower := strings.ToLower(path)

	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return e.readPDF(ctx, path)
	case strings.HasSuffix(lower, ".docx"):
		return e.readDOCX(ctx, path)
	default:
		return e.readText(ctx, path)
	}
}

// FromFiles extracts every file and joins the non-empty chunks,
// capping the merged output at a prudential limit.
func (e *Extractor) FromFiles(ctx context.Context, paths []string) string {
	var chunks []string

	for _, path := range paths {
		if chunk := e.FromFile(ctx, path); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	merged := strings.Join(chunks, "\n\n")

	return truncateRunes(merged, mergedTextMaxChars)
}

func (e *Extractor) readPDF(ctx context.Context, path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to open PDF",
			"error", err,
			"path", path)

		return ""
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.log.WarnContext(ctx, "Failed to close PDF",
				"error", closeErr,
				"path", path)
		}
	}()

	pages := r.NumPage()
	if pages > pdfMaxPages {
		pages = pdfMaxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			e.log.WarnContext(ctx, "Failed to extract PDF page",
				"error", pageErr,
				"path", path,
				"page", i)

			continue
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

func (e *Extractor) readDOCX(ctx context.Context, path string) string {
	f, err := os.Open(path)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to open DOCX",
			"error", err,
			"path", path)

		return ""
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.log.WarnContext(ctx, "Failed to close DOCX",
				"error", closeErr,
				"path", path)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return ""
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		e.log.WarnContext(ctx, "Failed to parse DOCX",
			"error", err,
			"path", path)

		return ""
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		b.WriteString(paragraph.String())
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

func (e *Extractor) readText(ctx context.Context, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to read text file",
			"error", err,
			"path", path)

		return ""
	}

	return strings.ToValidUTF8(string(data), "")
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit])
}
