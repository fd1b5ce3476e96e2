package parts

// Segment groups a smoothed label sequence into maximal runs of identical
// labels and builds the cutting instructions for the PDF splitter.
//
// Instrument metadata for each instruction is re-derived from the segment
// label through the normalizer, memoized per unique label. The memo map is
// local to this invocation on purpose: a cross-document cache would leak
// instrument-resolution context between unrelated scores.
func Segment(labels []PageLabel) ([]PartSegment, []CuttingInstruction) {
	if len(labels) == 0 {
		return nil, nil
	}

	var segments []PartSegment
	start := 0
	for i := 1; i <= len(labels); i++ {
		if i < len(labels) && labels[i].Label == labels[start].Label {
			continue
		}
		segments = append(segments, PartSegment{
			Label:     labels[start].Label,
			PageStart: labels[start].PageIndex,
			PageEnd:   labels[i-1].PageIndex,
			PageCount: i - start,
		})
		start = i
	}

	memo := make(map[string]NormalisedInstrument, len(segments))
	instructions := make([]CuttingInstruction, 0, len(segments))
	for n, seg := range segments {
		ni := resolveSegmentLabel(memo, seg.Label)
		instructions = append(instructions, CuttingInstruction{
			PartName:      ni.Instrument,
			Instrument:    ni.Instrument,
			Section:       ni.Section,
			Transposition: ni.Transposition,
			PartNumber:    n + 1,
			PageRange:     [2]int{seg.PageStart, seg.PageEnd},
		})
	}

	return segments, instructions
}

func resolveSegmentLabel(memo map[string]NormalisedInstrument, label string) NormalisedInstrument {
	if ni, ok := memo[label]; ok {
		return ni
	}
	ni, _ := NormalizeLabel(label)
	memo[label] = ni
	return ni
}

// SegmentBoundaries returns the page index at which each segment begins.
func SegmentBoundaries(segments []PartSegment) []int {
	bounds := make([]int, 0, len(segments))
	for _, s := range segments {
		bounds = append(bounds, s.PageStart)
	}
	return bounds
}
