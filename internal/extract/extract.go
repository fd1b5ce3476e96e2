// Package extract produces per-page header text from a PDF's text layer.
//
// This is the upstream boundary of the segmentation core: it emits ordered
// PageHeader records and a provenance flag. Scanned documents with no usable
// text layer are handled by the vision package instead.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"scorecut/internal/parts"
	"scorecut/internal/svcctx"
)

// Extractor produces page headers for a document.
type Extractor interface {
	// ExtractHeaders returns one PageHeader per page (0-indexed) plus the
	// total page count. Pages whose text cannot be read yield empty-text
	// headers rather than failing the document.
	ExtractHeaders(ctx context.Context, pdfPath string) ([]parts.PageHeader, int, error)
}

// TextLayerExtractor reads the embedded PDF text layer via pdftotext
// (poppler-utils), using pdfcpu for page accounting.
type TextLayerExtractor struct{}

// NewTextLayerExtractor returns a text-layer extractor.
func NewTextLayerExtractor() *TextLayerExtractor {
	return &TextLayerExtractor{}
}

// ExtractHeaders implements Extractor.
func (e *TextLayerExtractor) ExtractHeaders(ctx context.Context, pdfPath string) ([]parts.PageHeader, int, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, 0, fmt.Errorf("PDF not found: %s", pdfPath)
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get page count: %w", err)
	}

	headers := extractAllPages(ctx, pdfPath, pageCount)

	if log := svcctx.LoggerFrom(ctx); log != nil {
		withText := 0
		for _, h := range headers {
			if h.HeaderText != "" {
				withText++
			}
		}
		// Header content is never logged, only presence counts.
		log.Debug("text layer extracted", "pages", pageCount, "pages_with_header", withText)
	}

	return headers, pageCount, nil
}

// extractAllPages runs page extraction concurrently with a bounded worker
// pool. A page that fails contributes an empty header; one corrupt page
// never aborts the document.
func extractAllPages(ctx context.Context, pdfPath string, pageCount int) []parts.PageHeader {
	maxWorkers := runtime.NumCPU()

	results := make(chan parts.PageHeader, pageCount)
	sem := make(chan struct{}, maxWorkers)

	for page := 1; page <= pageCount; page++ {
		sem <- struct{}{} // acquire
		go func(pageNum int) {
			defer func() { <-sem }() // release

			text, err := pageText(ctx, pdfPath, pageNum)
			if err != nil {
				text = ""
			}
			results <- parts.PageHeader{
				PageIndex:  pageNum - 1,
				HeaderText: headerLine(text),
				FullText:   text,
			}
		}(page)
	}

	headers := make([]parts.PageHeader, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		headers = append(headers, <-results)
	}
	sort.Slice(headers, func(i, j int) bool { return headers[i].PageIndex < headers[j].PageIndex })
	return headers
}

// pageText extracts one page's text via pdftotext (poppler-utils).
func pageText(ctx context.Context, pdfPath string, pageNum int) (string, error) {
	pageStr := fmt.Sprintf("%d", pageNum)
	cmd := exec.CommandContext(ctx, "pdftotext",
		"-f", pageStr,
		"-l", pageStr,
		"-layout",
		pdfPath,
		"-",
	)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}

// headerLine takes the top-of-page text used as the instrument header: the
// first non-empty line.
func headerLine(pageText string) string {
	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
