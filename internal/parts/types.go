// Package parts turns noisy per-page header text from a multi-instrument
// sheet-music PDF into a page-accurate decomposition into instrument parts:
// instrument canonicalization, per-page labeling with confidence, noise
// smoothing, contiguous segmentation, and confidence aggregation.
//
// Every function in this package is a pure computation over document-local
// inputs. Nothing here performs I/O, blocks, or touches shared mutable state,
// so arbitrarily many documents may be analyzed concurrently.
package parts

// Chair identifies the seat within a section (1st, 2nd, ...).
type Chair string

const (
	ChairNone Chair = ""
	Chair1st  Chair = "1st"
	Chair2nd  Chair = "2nd"
	Chair3rd  Chair = "3rd"
	Chair4th  Chair = "4th"
	ChairAux  Chair = "Aux"
	ChairSolo Chair = "Solo"
)

// Transposition is the written key of an instrument part.
type Transposition string

const (
	TranspositionC  Transposition = "C"
	TranspositionBb Transposition = "Bb"
	TranspositionEb Transposition = "Eb"
	TranspositionF  Transposition = "F"
	TranspositionG  Transposition = "G"
	TranspositionD  Transposition = "D"
	TranspositionA  Transposition = "A"
)

// Section is the instrument family a part belongs to.
type Section string

const (
	SectionWoodwinds  Section = "Woodwinds"
	SectionBrass      Section = "Brass"
	SectionPercussion Section = "Percussion"
	SectionStrings    Section = "Strings"
	SectionKeyboard   Section = "Keyboard"
	SectionVocals     Section = "Vocals"
	SectionScore      Section = "Score"
	SectionOther      Section = "Other"
)

// PartType distinguishes individual parts from the various score forms.
type PartType string

const (
	PartTypeFullScore      PartType = "FULL_SCORE"
	PartTypeConductorScore PartType = "CONDUCTOR_SCORE"
	PartTypeCondensedScore PartType = "CONDENSED_SCORE"
	PartTypePart           PartType = "PART"
)

// PageHeader is the raw per-page input from the upstream text/OCR extractor.
type PageHeader struct {
	PageIndex  int    `json:"page_index"` // 0-based
	HeaderText string `json:"header_text"`
	FullText   string `json:"full_text"`
}

// PageLabel is a page's derived instrument label with confidence in [0,100].
// RawHeader is retained for the corrective pass but must never be logged or
// serialized; only its length or presence may appear in diagnostics.
type PageLabel struct {
	PageIndex  int    `json:"page_index"`
	Label      string `json:"label"`
	RawHeader  string `json:"-" yaml:"-"`
	Confidence int    `json:"confidence"`
}

// PartSegment is a maximal run of pages attributed to one part.
// Bounds are 0-indexed and inclusive.
type PartSegment struct {
	Label     string `json:"label"`
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
	PageCount int    `json:"page_count"`
}

// CuttingInstruction tells the PDF splitter where to cut one part.
// PageRange is [start, end], 0-indexed and inclusive; PartNumber is 1-based
// in document order.
type CuttingInstruction struct {
	PartName      string        `json:"part_name"`
	Instrument    string        `json:"instrument"`
	Section       Section       `json:"section"`
	Transposition Transposition `json:"transposition"`
	PartNumber    int           `json:"part_number"`
	PageRange     [2]int        `json:"page_range"`
}

// NormalisedInstrument is the canonical resolution of a raw header phrase.
type NormalisedInstrument struct {
	Instrument    string        `json:"instrument"` // display name including chair
	Chair         Chair         `json:"chair,omitempty"`
	Transposition Transposition `json:"transposition"`
	Section       Section       `json:"section"`
	PartType      PartType      `json:"part_type"`
}

// SegmentationResult is the full output of one analysis pass. It is
// recomputed from scratch on every pass, never mutated.
type SegmentationResult struct {
	PageLabels             []PageLabel          `json:"page_labels"`
	Segments               []PartSegment        `json:"segments"`
	CuttingInstructions    []CuttingInstruction `json:"cutting_instructions"`
	SegmentationConfidence int                  `json:"segmentation_confidence"`
	FromTextLayer          bool                 `json:"from_text_layer"`
	SegmentBoundaries      []int                `json:"segment_boundaries"`
	PerPageConfidence      []int                `json:"per_page_confidence"`
}

// UnknownPartLabel marks pages that were present in the document but absent
// from the analysis input. Distinct from a noisy-but-analyzed page: these
// never inherit a neighbor label.
const UnknownPartLabel = "Unknown Part"

// Confidence policy constants. The exact values are tunable; their relative
// order (exact > fuzzy > propagated > front-matter) is load-bearing.
const (
	ConfidenceExactMatch   = 80
	ConfidenceFuzzyMatch   = 65
	ConfidencePropagated   = 40
	ConfidenceFrontMatter  = 30
	ConfidenceBlipCap      = 60
	ConfidenceFrontFloor   = 50
	frontMatterFloorWindow = 2 // first N page indices eligible for the floor
)
