// Package splitter cuts a source PDF into per-part files according to the
// cutting instructions produced by segmentation.
package splitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"scorecut/internal/parts"
	"scorecut/internal/svcctx"
)

// Result describes one written part file.
type Result struct {
	PartName   string `json:"part_name"`
	PartNumber int    `json:"part_number"`
	Path       string `json:"path"`
	PageStart  int    `json:"page_start"` // 0-indexed, inclusive
	PageEnd    int    `json:"page_end"`
}

var unsafeFileChars = regexp.MustCompile(`[\x00-\x1f/\\:*?"<>|]+`)

// Split writes one PDF per cutting instruction into outDir. Instructions are
// validated against the document bounds before any page is touched; a
// malformed instruction fails the batch rather than producing a wrong cut.
func Split(ctx context.Context, pdfPath, outDir string, instructions []parts.CuttingInstruction) ([]Result, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no cutting instructions")
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	for _, instr := range instructions {
		if err := validateInstruction(instr, pageCount); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	log := svcctx.LoggerFrom(ctx)

	results := make([]Result, 0, len(instructions))
	for _, instr := range instructions {
		outPath := filepath.Join(outDir, partFileName(instr))

		// pdfcpu page selection is 1-based inclusive.
		span := fmt.Sprintf("%d-%d", instr.PageRange[0]+1, instr.PageRange[1]+1)
		if err := api.TrimFile(pdfPath, outPath, []string{span}, nil); err != nil {
			return nil, fmt.Errorf("failed to cut part %q: %w", instr.PartName, err)
		}

		if log != nil {
			log.Info("part written",
				"part", instr.PartName,
				"part_number", instr.PartNumber,
				"pages", instr.PageRange[1]-instr.PageRange[0]+1)
		}

		results = append(results, Result{
			PartName:   instr.PartName,
			PartNumber: instr.PartNumber,
			Path:       outPath,
			PageStart:  instr.PageRange[0],
			PageEnd:    instr.PageRange[1],
		})
	}

	return results, nil
}

func validateInstruction(instr parts.CuttingInstruction, pageCount int) error {
	start, end := instr.PageRange[0], instr.PageRange[1]
	if start < 0 || end < start {
		return fmt.Errorf("instruction %d (%s) has invalid page range [%d, %d]", instr.PartNumber, instr.PartName, start, end)
	}
	if end >= pageCount {
		return fmt.Errorf("instruction %d (%s) range [%d, %d] exceeds document of %d pages", instr.PartNumber, instr.PartName, start, end, pageCount)
	}
	// The normalizer guarantees sentinels never reach a part name; a
	// violation here means the instructions bypassed segmentation.
	if parts.IsForbiddenLabel(instr.PartName) && !parts.IsBlankLabel(instr.PartName) {
		return fmt.Errorf("instruction %d has forbidden part name %q", instr.PartNumber, instr.PartName)
	}
	return nil
}

// partFileName builds the output filename: "03 - 2nd Bb Clarinet.pdf".
func partFileName(instr parts.CuttingInstruction) string {
	name := unsafeFileChars.ReplaceAllString(instr.PartName, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Part"
	}
	return fmt.Sprintf("%02d - %s.pdf", instr.PartNumber, name)
}
