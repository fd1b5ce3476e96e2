// Package session orchestrates analysis passes over one document and routes
// the outcome between auto-commit and human review.
//
// A session runs a first pass from the PDF text layer and, when the quality
// gate rejects it, an optional corrective pass from the vision reader. Both
// passes call the identical gate evaluator, so auto-commit eligibility is
// never decided by diverging code paths. Results are recomputed per pass,
// never mutated.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scorecut/internal/extract"
	"scorecut/internal/gate"
	"scorecut/internal/parts"
	"scorecut/internal/svcctx"
)

// State is the routing decision for a completed session.
type State string

const (
	StateAutoCommit    State = "AUTO_COMMIT"
	StatePendingReview State = "PENDING_REVIEW"
)

// Pass is one complete analysis of the document.
type Pass struct {
	ID            string                    `json:"id"`
	FromTextLayer bool                      `json:"from_text_layer"`
	Segmentation  *parts.SegmentationResult `json:"segmentation"`
	Gate          gate.Result               `json:"gate"`
}

// Outcome is the final session result. Reasons from the deciding pass are
// recorded verbatim for the audit log.
type Outcome struct {
	DocumentID string `json:"document_id"`
	State      State  `json:"state"`
	Passes     []Pass `json:"passes"`
}

// Config tunes the gates applied to every pass.
type Config struct {
	MaxPagesPerPart     int
	ConfidenceThreshold int
}

// Session analyzes one document. Primary is the text-layer extractor;
// Corrective, when non-nil, supplies the OCR/vision second pass.
type Session struct {
	primary    extract.Extractor
	corrective extract.Extractor
	cfg        Config
}

// New creates a session.
func New(primary, corrective extract.Extractor, cfg Config) *Session {
	return &Session{primary: primary, corrective: corrective, cfg: cfg}
}

// Run analyzes the document and decides its routing. A document with zero
// confidently labeled pages still produces a full result and is routed to
// review; absence of a definitive pass means block, not proceed.
func (s *Session) Run(ctx context.Context, pdfPath string) (*Outcome, error) {
	outcome := &Outcome{
		DocumentID: uuid.New().String(),
		State:      StatePendingReview,
	}
	log := svcctx.LoggerFrom(ctx)

	first, err := s.runPass(ctx, s.primary, pdfPath, true)
	if err != nil {
		return nil, fmt.Errorf("text-layer pass failed: %w", err)
	}
	outcome.Passes = append(outcome.Passes, *first)

	deciding := first
	if first.Gate.Failed && s.corrective != nil {
		if log != nil {
			log.Info("first pass rejected, running corrective pass",
				"document_id", outcome.DocumentID,
				"reasons", len(first.Gate.Reasons))
		}
		second, err := s.runPass(ctx, s.corrective, pdfPath, false)
		if err != nil {
			// The first pass result stands; the document goes to review.
			if log != nil {
				log.Warn("corrective pass failed", "document_id", outcome.DocumentID, "error", err)
			}
		} else {
			outcome.Passes = append(outcome.Passes, *second)
			deciding = second
		}
	}

	if !deciding.Gate.Failed {
		outcome.State = StateAutoCommit
	}

	if log != nil {
		log.Info("session complete",
			"document_id", outcome.DocumentID,
			"state", string(outcome.State),
			"passes", len(outcome.Passes),
			"final_confidence", deciding.Gate.FinalConfidence)
		for _, reason := range deciding.Gate.Reasons {
			log.Info("gate reason", "document_id", outcome.DocumentID, "reason", reason)
		}
	}

	return outcome, nil
}

// runPass extracts, segments, and gates one complete analysis.
func (s *Session) runPass(ctx context.Context, ex extract.Extractor, pdfPath string, fromTextLayer bool) (*Pass, error) {
	headers, totalPages, err := ex.ExtractHeaders(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	seg, err := parts.Analyze(headers, totalPages, fromTextLayer)
	if err != nil {
		return nil, err
	}

	segConf := seg.SegmentationConfidence
	verdict := gate.Evaluate(gate.Input{
		Parts:                  partsFromSegmentation(seg),
		Metadata:               metadataFromSegmentation(seg),
		TotalPages:             totalPages,
		MaxPagesPerPart:        s.cfg.MaxPagesPerPart,
		SegmentationConfidence: &segConf,
		ConfidenceThreshold:    s.cfg.ConfidenceThreshold,
	})

	return &Pass{
		ID:            uuid.New().String(),
		FromTextLayer: fromTextLayer,
		Segmentation:  seg,
		Gate:          verdict,
	}, nil
}

// partsFromSegmentation derives the parsed-part view the gate checks.
func partsFromSegmentation(seg *parts.SegmentationResult) []gate.ParsedPart {
	pp := make([]gate.ParsedPart, 0, len(seg.CuttingInstructions))
	for _, instr := range seg.CuttingInstructions {
		ni, _ := parts.NormalizeLabel(instr.PartName)
		pp = append(pp, gate.ParsedPart{
			Name:       instr.PartName,
			Instrument: instr.Instrument,
			PartType:   ni.PartType,
			PageCount:  instr.PageRange[1] - instr.PageRange[0] + 1,
		})
	}
	return pp
}

func metadataFromSegmentation(seg *parts.SegmentationResult) gate.Metadata {
	ins := make([]gate.Instruction, 0, len(seg.CuttingInstructions))
	distinct := make(map[string]struct{})
	for _, instr := range seg.CuttingInstructions {
		ins = append(ins, gate.Instruction{
			PartName:   instr.PartName,
			Instrument: instr.Instrument,
			PageRange:  []int{instr.PageRange[0], instr.PageRange[1]},
		})
		distinct[instr.PartName] = struct{}{}
	}
	return gate.Metadata{
		CuttingInstructions: ins,
		ConfidenceScore:     seg.SegmentationConfidence,
		IsMultiPart:         len(distinct) > 1,
	}
}
