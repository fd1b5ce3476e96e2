package gate

import (
	"strings"
	"testing"

	"scorecut/internal/parts"
)

func intPtr(v int) *int { return &v }

func TestEvaluatePasses(t *testing.T) {
	in := Input{
		Parts: []ParsedPart{
			{Name: "1st Flute", Instrument: "1st Flute", PartType: parts.PartTypePart, PageCount: 10},
			{Name: "Oboe", Instrument: "Oboe", PartType: parts.PartTypePart, PageCount: 10},
		},
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "1st Flute", Instrument: "1st Flute", PageRange: []int{0, 9}},
				{PartName: "Oboe", Instrument: "Oboe", PageRange: []int{10, 19}},
			},
			ConfidenceScore: 90,
			IsMultiPart:     true,
		},
		TotalPages:             20,
		SegmentationConfidence: intPtr(85),
	}

	res := Evaluate(in)

	if res.Failed {
		t.Fatalf("gate failed: %v", res.Reasons)
	}
	if len(res.Reasons) != 0 {
		t.Errorf("got reasons on a passing document: %v", res.Reasons)
	}
	if res.FinalConfidence != 85 {
		t.Errorf("final confidence: got %d, want 85 (min of extraction and segmentation)", res.FinalConfidence)
	}
}

func TestEvaluateForbiddenPart(t *testing.T) {
	in := Input{
		Parts: []ParsedPart{
			{Name: "unknown", Instrument: "unknown", PartType: parts.PartTypePart, PageCount: 3},
		},
		TotalPages: 3,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure for forbidden part name")
	}
	if !containsReason(res.Reasons, "forbidden name") {
		t.Errorf("reasons missing forbidden-name entry: %v", res.Reasons)
	}
}

func TestEvaluateBlankPartsExempt(t *testing.T) {
	in := Input{
		Parts: []ParsedPart{
			{Name: "Blank Page", Instrument: "Blank Page", PartType: parts.PartTypePart, PageCount: 1},
		},
		TotalPages: 0,
	}

	res := Evaluate(in)

	if res.Failed {
		t.Fatalf("blank/spacer part must not trip the forbidden gate: %v", res.Reasons)
	}
}

func TestEvaluateForbiddenInstruction(t *testing.T) {
	in := Input{
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "n/a", Instrument: "n/a", PageRange: []int{0, 2}},
			},
		},
		TotalPages: 3,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure for forbidden instruction name")
	}
	if !containsReason(res.Reasons, "forbidden part name") {
		t.Errorf("reasons missing forbidden instruction entry: %v", res.Reasons)
	}
}

func TestEvaluateMalformedRanges(t *testing.T) {
	tests := []struct {
		name  string
		instr Instruction
		want  string
	}{
		{
			name:  "missing range",
			instr: Instruction{PartName: "Tuba", Instrument: "Tuba"},
			want:  "malformed page range",
		},
		{
			name:  "inverted range",
			instr: Instruction{PartName: "Tuba", Instrument: "Tuba", PageRange: []int{5, 2}},
			want:  "invalid page range",
		},
		{
			name:  "negative start",
			instr: Instruction{PartName: "Tuba", Instrument: "Tuba", PageRange: []int{-1, 2}},
			want:  "invalid page range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(Input{
				Metadata: Metadata{CuttingInstructions: []Instruction{tt.instr}},
			})
			if !res.Failed {
				t.Fatal("expected failure")
			}
			if !containsReason(res.Reasons, tt.want) {
				t.Errorf("reasons %v missing %q", res.Reasons, tt.want)
			}
		})
	}
}

func TestEvaluateOversizedPart(t *testing.T) {
	in := Input{
		Parts: []ParsedPart{
			{Name: "2nd Bb Clarinet", Instrument: "2nd Bb Clarinet", PartType: parts.PartTypePart, PageCount: 15},
		},
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "2nd Bb Clarinet", Instrument: "2nd Bb Clarinet", PageRange: []int{0, 14}},
			},
		},
		TotalPages:      15,
		MaxPagesPerPart: 12,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure for oversized part")
	}
	if !containsReason(res.Reasons, `"2nd Bb Clarinet" spans 15 pages`) {
		t.Errorf("reasons %v do not name the oversized part", res.Reasons)
	}
}

func TestEvaluateScoresExemptFromSizeLimit(t *testing.T) {
	in := Input{
		Parts: []ParsedPart{
			{Name: "Full Score", Instrument: "Full Score", PartType: parts.PartTypeFullScore, PageCount: 40},
		},
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "Full Score", Instrument: "Full Score", PageRange: []int{0, 39}},
			},
		},
		TotalPages: 40,
	}

	res := Evaluate(in)

	if res.Failed {
		t.Fatalf("score must be exempt from the per-part page limit: %v", res.Reasons)
	}
}

func TestEvaluateMultiPartNeedsCuts(t *testing.T) {
	in := Input{
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "Tuba", Instrument: "Tuba", PageRange: []int{0, 19}},
			},
			IsMultiPart: true,
		},
		TotalPages: 20,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure: multi-part document with a single instruction")
	}
	if !containsReason(res.Reasons, "flagged multi-part") {
		t.Errorf("reasons missing multi-part entry: %v", res.Reasons)
	}
}

func TestEvaluateMultiPartSmallDocExempt(t *testing.T) {
	in := Input{
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "Tuba", Instrument: "Tuba", PageRange: []int{0, 7}},
			},
			IsMultiPart: true,
		},
		TotalPages: 8,
	}

	res := Evaluate(in)

	if res.Failed {
		t.Fatalf("short multi-part document must pass: %v", res.Reasons)
	}
}

func TestEvaluateCoverageGap(t *testing.T) {
	in := Input{
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "1st Flute", Instrument: "1st Flute", PageRange: []int{0, 17}},
			},
		},
		TotalPages: 20,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure for uncovered pages")
	}
	if !containsReason(res.Reasons, "do not cover pages [19 20]") {
		t.Errorf("small gap must enumerate missing pages, got %v", res.Reasons)
	}
}

func TestEvaluateCoverageGrossGap(t *testing.T) {
	in := Input{
		Metadata: Metadata{
			CuttingInstructions: []Instruction{
				{PartName: "1st Flute", Instrument: "1st Flute", PageRange: []int{0, 4}},
			},
		},
		TotalPages: 20,
	}

	res := Evaluate(in)

	if !res.Failed {
		t.Fatal("expected failure for uncovered pages")
	}
	if !containsReason(res.Reasons, "leave 15 of 20 pages uncovered") {
		t.Errorf("gross gap must be summarized, got %v", res.Reasons)
	}
}

func TestEvaluateNoInstructionsFailsCoverage(t *testing.T) {
	// An empty instruction set covers nothing: every page is uncovered and
	// the document must not be auto-commit eligible, regardless of confidence.
	res := Evaluate(Input{
		Metadata:               Metadata{ConfidenceScore: 95},
		TotalPages:             20,
		SegmentationConfidence: intPtr(95),
	})

	if !res.Failed {
		t.Fatal("expected failure: no cutting instructions leave all pages uncovered")
	}
	if !containsReason(res.Reasons, "leave 20 of 20 pages uncovered") {
		t.Errorf("reasons %v missing gross coverage failure", res.Reasons)
	}
}

func TestEvaluateConfidenceThreshold(t *testing.T) {
	tests := []struct {
		name       string
		conf       *int
		threshold  int
		wantFailed bool
	}{
		{"below default threshold", intPtr(60), 0, true},
		{"at default threshold", intPtr(70), 0, false},
		{"below custom threshold", intPtr(80), 90, true},
		{"absent confidence is not checked", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(Input{
				SegmentationConfidence: tt.conf,
				ConfidenceThreshold:    tt.threshold,
			})
			if res.Failed != tt.wantFailed {
				t.Errorf("failed=%v, want %v (reasons %v)", res.Failed, tt.wantFailed, res.Reasons)
			}
		})
	}
}

func TestFinalConfidence(t *testing.T) {
	tests := []struct {
		name         string
		extraction   int
		segmentation *int
		want         int
	}{
		{"segmentation weaker", 90, intPtr(70), 70},
		{"extraction weaker", 60, intPtr(95), 60},
		{"no segmentation signal", 80, nil, 80},
		{"clamped high", 140, nil, 100},
		{"clamped low", -5, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(Input{
				Metadata:               Metadata{ConfidenceScore: tt.extraction},
				SegmentationConfidence: tt.segmentation,
				ConfidenceThreshold:    1, // keep the threshold check quiet
			})
			if res.FinalConfidence != tt.want {
				t.Errorf("got %d, want %d", res.FinalConfidence, tt.want)
			}
		})
	}
}

func containsReason(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}
