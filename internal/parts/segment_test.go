package parts

import "testing"

func TestSegment(t *testing.T) {
	labels := []PageLabel{
		lbl(0, "1st Flute", 80),
		lbl(1, "1st Flute", 40),
		lbl(2, "2nd Bb Clarinet", 80),
		lbl(3, "2nd Bb Clarinet", 80),
		lbl(4, "2nd Bb Clarinet", 80),
		lbl(5, UnknownPartLabel, 0),
	}

	segments, instructions := Segment(labels)

	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}

	want := []PartSegment{
		{Label: "1st Flute", PageStart: 0, PageEnd: 1, PageCount: 2},
		{Label: "2nd Bb Clarinet", PageStart: 2, PageEnd: 4, PageCount: 3},
		{Label: UnknownPartLabel, PageStart: 5, PageEnd: 5, PageCount: 1},
	}
	for i, w := range want {
		if segments[i] != w {
			t.Errorf("segment %d: got %+v, want %+v", i, segments[i], w)
		}
	}

	if len(instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instructions))
	}
	for i, instr := range instructions {
		if instr.PartNumber != i+1 {
			t.Errorf("instruction %d: part number %d, want %d", i, instr.PartNumber, i+1)
		}
		if instr.PageRange[0] != segments[i].PageStart || instr.PageRange[1] != segments[i].PageEnd {
			t.Errorf("instruction %d: range %v does not match segment bounds", i, instr.PageRange)
		}
	}

	clarinet := instructions[1]
	if clarinet.Instrument != "2nd Bb Clarinet" {
		t.Errorf("instrument: got %q", clarinet.Instrument)
	}
	if clarinet.Section != SectionWoodwinds {
		t.Errorf("section: got %q, want %q", clarinet.Section, SectionWoodwinds)
	}
	if clarinet.Transposition != TranspositionBb {
		t.Errorf("transposition: got %q, want %q", clarinet.Transposition, TranspositionBb)
	}
}

func TestSegmentPartition(t *testing.T) {
	// Segments must partition the page range: no gaps, no overlaps.
	labels := []PageLabel{
		lbl(0, "A", 80), lbl(1, "A", 80), lbl(2, "B", 80),
		lbl(3, "C", 80), lbl(4, "C", 80), lbl(5, "C", 80),
	}

	segments, _ := Segment(labels)

	total := 0
	next := 0
	for _, s := range segments {
		if s.PageStart != next {
			t.Errorf("segment %q starts at %d, want %d", s.Label, s.PageStart, next)
		}
		if s.PageEnd < s.PageStart {
			t.Errorf("segment %q has end %d before start %d", s.Label, s.PageEnd, s.PageStart)
		}
		total += s.PageCount
		next = s.PageEnd + 1
	}
	if total != len(labels) {
		t.Errorf("page counts sum to %d, want %d", total, len(labels))
	}
}

func TestSegmentEmpty(t *testing.T) {
	segments, instructions := Segment(nil)
	if segments != nil || instructions != nil {
		t.Errorf("expected nil results for empty input")
	}
}

func TestSegmentBoundaries(t *testing.T) {
	labels := []PageLabel{
		lbl(0, "A", 80), lbl(1, "B", 80), lbl(2, "B", 80), lbl(3, "C", 80),
	}

	segments, _ := Segment(labels)
	bounds := SegmentBoundaries(segments)

	want := []int{0, 1, 3}
	if len(bounds) != len(want) {
		t.Fatalf("got %d boundaries, want %d", len(bounds), len(want))
	}
	for i := range want {
		if bounds[i] != want[i] {
			t.Errorf("boundary %d: got %d, want %d", i, bounds[i], want[i])
		}
	}
}
