// Package gate implements the shared quality gate that decides whether a
// machine-produced part decomposition may be committed without human review.
//
// Every processing pass (first text-layer pass and any corrective
// re-analysis) calls the same Evaluate function, so auto-commit eligibility
// is never decided by two diverging code paths. Evaluation is pure and
// deterministic; all failure is represented as operator-readable reason
// strings, never as errors.
package gate

import (
	"fmt"
	"sort"

	"scorecut/internal/parts"
)

// Defaults for the configurable gates.
const (
	DefaultMaxPagesPerPart     = 12
	DefaultConfidenceThreshold = 70
)

// Thresholds used by the multi-part and coverage gates.
const (
	multiPartMinPages     = 10
	enumerableGapMaxPages = 5
)

// ParsedPart is a downstream part as parsed from the split output.
type ParsedPart struct {
	Name       string         `json:"name"`
	Instrument string         `json:"instrument"`
	PartType   parts.PartType `json:"part_type"`
	PageCount  int            `json:"page_count"`
}

// Instruction mirrors a cutting instruction as it arrives in upstream
// metadata. PageRange is a slice, not an array: metadata crosses a JSON
// boundary and may be malformed, which is exactly what the range check catches.
type Instruction struct {
	PartName   string `json:"part_name"`
	Instrument string `json:"instrument"`
	PageRange  []int  `json:"page_range"` // [start, end], 0-indexed inclusive
}

// Metadata is the extraction metadata accompanying the parsed parts.
type Metadata struct {
	CuttingInstructions []Instruction `json:"cutting_instructions"`
	ConfidenceScore     int           `json:"confidence_score"` // extraction confidence
	IsMultiPart         bool          `json:"is_multi_part"`
}

// Input carries everything the gate evaluates.
type Input struct {
	Parts      []ParsedPart `json:"parts"`
	Metadata   Metadata     `json:"metadata"`
	TotalPages int          `json:"total_pages"`

	// MaxPagesPerPart bounds non-score parts; 0 means DefaultMaxPagesPerPart.
	MaxPagesPerPart int `json:"max_pages_per_part"`

	// SegmentationConfidence, when present, is checked against
	// ConfidenceThreshold (0 means DefaultConfidenceThreshold).
	SegmentationConfidence *int `json:"segmentation_confidence,omitempty"`
	ConfidenceThreshold    int  `json:"confidence_threshold"`
}

// Result is the gate verdict. Reasons are self-describing strings recorded
// verbatim by the audit log.
type Result struct {
	Failed          bool     `json:"failed"`
	Reasons         []string `json:"reasons"`
	FinalConfidence int      `json:"final_confidence"`
}

// Evaluate runs all gates and aggregates their failures. It never fails
// itself: absence of a definitive pass is represented as reasons, and a
// document with reasons is routed to review, not dropped.
func Evaluate(in Input) Result {
	maxPages := in.MaxPagesPerPart
	if maxPages <= 0 {
		maxPages = DefaultMaxPagesPerPart
	}
	threshold := in.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	var reasons []string
	reasons = append(reasons, checkForbiddenParts(in.Parts)...)
	reasons = append(reasons, checkForbiddenInstructions(in.Metadata.CuttingInstructions)...)
	reasons = append(reasons, checkInstructionRanges(in.Metadata.CuttingInstructions)...)
	reasons = append(reasons, checkOversizedParts(in.Parts, maxPages)...)
	reasons = append(reasons, checkMultiPartCount(in.Metadata, in.TotalPages)...)
	reasons = append(reasons, checkPageCoverage(in.Metadata.CuttingInstructions, in.TotalPages)...)
	reasons = append(reasons, checkSegmentationConfidence(in.SegmentationConfidence, threshold)...)

	return Result{
		Failed:          len(reasons) > 0,
		Reasons:         reasons,
		FinalConfidence: finalConfidence(in.Metadata.ConfidenceScore, in.SegmentationConfidence),
	}
}

// checkForbiddenParts: no parsed part, blank/spacer parts excepted, may
// carry a forbidden instrument or name.
func checkForbiddenParts(pp []ParsedPart) []string {
	var reasons []string
	for i, p := range pp {
		if parts.IsBlankLabel(p.Name) || parts.IsBlankLabel(p.Instrument) {
			continue
		}
		if parts.IsForbiddenLabel(p.Name) {
			reasons = append(reasons, fmt.Sprintf("part %d has forbidden name %q", i+1, p.Name))
		}
		if parts.IsForbiddenLabel(p.Instrument) {
			reasons = append(reasons, fmt.Sprintf("part %d (%s) has forbidden instrument %q", i+1, p.Name, p.Instrument))
		}
	}
	return reasons
}

// checkForbiddenInstructions: the same guard applied to the metadata's
// cutting instructions, catching invalid instructions whose downstream part
// coincidentally looks valid.
func checkForbiddenInstructions(ins []Instruction) []string {
	var reasons []string
	for i, instr := range ins {
		if parts.IsBlankLabel(instr.PartName) || parts.IsBlankLabel(instr.Instrument) {
			continue
		}
		if parts.IsForbiddenLabel(instr.PartName) {
			reasons = append(reasons, fmt.Sprintf("cutting instruction %d has forbidden part name %q", i+1, instr.PartName))
		}
		if parts.IsForbiddenLabel(instr.Instrument) {
			reasons = append(reasons, fmt.Sprintf("cutting instruction %d (%s) has forbidden instrument %q", i+1, instr.PartName, instr.Instrument))
		}
	}
	return reasons
}

// checkInstructionRanges: every instruction needs a well-formed
// two-element page range with end >= start.
func checkInstructionRanges(ins []Instruction) []string {
	var reasons []string
	for i, instr := range ins {
		if len(instr.PageRange) != 2 {
			reasons = append(reasons, fmt.Sprintf("cutting instruction %d (%s) has malformed page range %v", i+1, instr.PartName, instr.PageRange))
			continue
		}
		if instr.PageRange[0] < 0 || instr.PageRange[1] < instr.PageRange[0] {
			reasons = append(reasons, fmt.Sprintf("cutting instruction %d (%s) has invalid page range [%d, %d]", i+1, instr.PartName, instr.PageRange[0], instr.PageRange[1]))
		}
	}
	return reasons
}

// checkOversizedParts: an oversized non-score part indicates a missed
// part boundary.
func checkOversizedParts(pp []ParsedPart, maxPages int) []string {
	var reasons []string
	for _, p := range pp {
		if p.PartType != parts.PartTypePart && p.PartType != "" {
			continue
		}
		if p.PageCount > maxPages {
			reasons = append(reasons, fmt.Sprintf("part %q spans %d pages, exceeding the %d-page limit for a single part", p.Name, p.PageCount, maxPages))
		}
	}
	return reasons
}

// checkMultiPartCount: a document flagged multi-part with a non-trivial
// page count must have been cut at least once.
func checkMultiPartCount(md Metadata, totalPages int) []string {
	if !md.IsMultiPart || totalPages <= multiPartMinPages {
		return nil
	}
	if len(md.CuttingInstructions) >= 2 {
		return nil
	}
	return []string{fmt.Sprintf("document is flagged multi-part with %d pages but has %d cutting instruction(s)", totalPages, len(md.CuttingInstructions))}
}

// checkPageCoverage: the union of instruction ranges must cover pages
// 1..totalPages. Small gaps are enumerated for the operator; anything larger
// is a gross coverage failure. Both block auto-commit.
func checkPageCoverage(ins []Instruction, totalPages int) []string {
	if totalPages <= 0 {
		return nil
	}

	covered := make(map[int]struct{}, totalPages)
	for _, instr := range ins {
		if len(instr.PageRange) != 2 || instr.PageRange[1] < instr.PageRange[0] {
			continue // the range check reports these
		}
		// PageRange is 0-indexed; coverage is counted in 1-based pages.
		for p := instr.PageRange[0] + 1; p <= instr.PageRange[1]+1; p++ {
			covered[p] = struct{}{}
		}
	}

	var missing []int
	for p := 1; p <= totalPages; p++ {
		if _, ok := covered[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Ints(missing)

	if len(missing) > enumerableGapMaxPages {
		return []string{fmt.Sprintf("cutting instructions leave %d of %d pages uncovered", len(missing), totalPages)}
	}
	return []string{fmt.Sprintf("cutting instructions do not cover pages %v", missing)}
}

// checkSegmentationConfidence: a supplied prior segmentation confidence
// must clear the configured threshold.
func checkSegmentationConfidence(conf *int, threshold int) []string {
	if conf == nil || *conf >= threshold {
		return nil
	}
	return []string{fmt.Sprintf("segmentation confidence %d is below the threshold of %d", *conf, threshold)}
}

// finalConfidence takes the weaker of the extraction and segmentation
// signals: a document is only as trustworthy as its weakest one.
func finalConfidence(extraction int, segmentation *int) int {
	if segmentation == nil {
		return clamp(extraction)
	}
	if *segmentation < extraction {
		return clamp(*segmentation)
	}
	return clamp(extraction)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
