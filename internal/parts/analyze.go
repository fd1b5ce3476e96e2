package parts

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidPageCount marks programmer-error-class misuse of Analyze.
var ErrInvalidPageCount = errors.New("total pages must not be negative")

// Analyze runs the full labeling pipeline over one document's page headers:
// label, smooth, segment, aggregate. It is deterministic; identical input
// yields an identical result.
//
// Malformed document content never fails the call: out-of-range page indices
// are dropped, duplicate indices keep their first occurrence, and a document
// with zero recognizable headers still produces a complete result (typically
// one large "Unknown Part" segment) for the quality gate to reject. Only
// misuse (negative totalPages) returns an error.
func Analyze(headers []PageHeader, totalPages int, fromTextLayer bool) (*SegmentationResult, error) {
	if totalPages < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageCount, totalPages)
	}

	cleaned := sanitizeHeaders(headers, totalPages)

	labeled := LabelPages(cleaned)
	smoothed := SmoothLabels(labeled, totalPages)
	segments, instructions := Segment(smoothed)

	perPage := make([]int, 0, len(smoothed))
	for _, l := range smoothed {
		perPage = append(perPage, l.Confidence)
	}

	return &SegmentationResult{
		PageLabels:             smoothed,
		Segments:               segments,
		CuttingInstructions:    instructions,
		SegmentationConfidence: AggregateConfidence(smoothed),
		FromTextLayer:          fromTextLayer,
		SegmentBoundaries:      SegmentBoundaries(segments),
		PerPageConfidence:      perPage,
	}, nil
}

// sanitizeHeaders coerces malformed input to a safe shape: indices outside
// [0, totalPages) are dropped, duplicates keep the first occurrence, and the
// result is sorted by page index. One corrupt header never aborts the
// document.
func sanitizeHeaders(headers []PageHeader, totalPages int) []PageHeader {
	seen := make(map[int]struct{}, len(headers))
	cleaned := make([]PageHeader, 0, len(headers))
	for _, h := range headers {
		if h.PageIndex < 0 || h.PageIndex >= totalPages {
			continue
		}
		if _, dup := seen[h.PageIndex]; dup {
			continue
		}
		seen[h.PageIndex] = struct{}{}
		cleaned = append(cleaned, h)
	}
	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i].PageIndex < cleaned[j].PageIndex })
	return cleaned
}
