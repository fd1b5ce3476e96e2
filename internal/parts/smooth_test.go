package parts

import "testing"

func lbl(idx int, label string, conf int) PageLabel {
	return PageLabel{PageIndex: idx, Label: label, Confidence: conf}
}

func TestSmoothLabelsForwardFill(t *testing.T) {
	in := []PageLabel{
		lbl(0, "Flute", 80),
		lbl(1, "", 0),
		lbl(2, "", 0),
		lbl(3, "Oboe", 80),
	}

	out := SmoothLabels(in, 4)

	if out[1].Label != "Flute" || out[1].Confidence != ConfidencePropagated {
		t.Errorf("page 1: got %q@%d, want Flute@%d", out[1].Label, out[1].Confidence, ConfidencePropagated)
	}
	if out[2].Label != "Flute" || out[2].Confidence != ConfidencePropagated {
		t.Errorf("page 2: got %q@%d, want Flute@%d", out[2].Label, out[2].Confidence, ConfidencePropagated)
	}
	if out[3].Label != "Oboe" || out[3].Confidence != 80 {
		t.Errorf("page 3 should be untouched, got %q@%d", out[3].Label, out[3].Confidence)
	}
}

func TestSmoothLabelsBlipCorrection(t *testing.T) {
	// A single page disagreeing with agreeing neighbors is extraction noise.
	in := []PageLabel{
		lbl(0, "Flute", 80),
		lbl(1, "Flute", 80),
		lbl(2, "Oboe", 80),
		lbl(3, "Flute", 80),
		lbl(4, "Flute", 80),
	}

	out := SmoothLabels(in, 5)

	for i, l := range out {
		if l.Label != "Flute" {
			t.Errorf("page %d: got %q, want Flute", i, l.Label)
		}
	}
	if out[2].Confidence != ConfidenceBlipCap {
		t.Errorf("corrected blip confidence: got %d, want %d", out[2].Confidence, ConfidenceBlipCap)
	}
}

func TestSmoothLabelsBlipKeepsRealBoundaries(t *testing.T) {
	// Two-page runs are genuine part changes, not blips.
	in := []PageLabel{
		lbl(0, "Flute", 80),
		lbl(1, "Oboe", 80),
		lbl(2, "Oboe", 80),
		lbl(3, "Flute", 80),
	}

	out := SmoothLabels(in, 4)

	if out[1].Label != "Oboe" || out[2].Label != "Oboe" {
		t.Errorf("two-page run was altered: %q, %q", out[1].Label, out[2].Label)
	}
}

func TestSmoothLabelsFrontMatterFill(t *testing.T) {
	in := []PageLabel{
		lbl(0, "", 0),
		lbl(1, "", 0),
		lbl(2, "Piano", 80),
		lbl(3, "Piano", 80),
	}

	out := SmoothLabels(in, 4)

	for _, i := range []int{0, 1} {
		if out[i].Label != "Piano" || out[i].Confidence != ConfidenceFrontMatter {
			t.Errorf("page %d: got %q@%d, want Piano@%d", i, out[i].Label, out[i].Confidence, ConfidenceFrontMatter)
		}
	}
}

func TestSmoothLabelsUnanalyzedPages(t *testing.T) {
	// Pages absent from the input are a distinct failure mode: they must be
	// marked, never given a propagated neighbor label.
	in := []PageLabel{
		lbl(0, "Flute", 80),
		lbl(1, "Flute", 80),
		lbl(3, "Flute", 80),
	}

	out := SmoothLabels(in, 5)

	if len(out) != 5 {
		t.Fatalf("got %d pages, want 5", len(out))
	}
	for _, i := range []int{2, 4} {
		if out[i].Label != UnknownPartLabel {
			t.Errorf("page %d: got %q, want %q", i, out[i].Label, UnknownPartLabel)
		}
		if out[i].Confidence != 0 {
			t.Errorf("page %d: got confidence %d, want 0", i, out[i].Confidence)
		}
	}
}

func TestSmoothLabelsAllUnlabeled(t *testing.T) {
	in := []PageLabel{
		lbl(0, "", 0),
		lbl(1, "", 0),
	}

	out := SmoothLabels(in, 2)

	for i, l := range out {
		if l.Label != "" {
			t.Errorf("page %d: got %q, want empty", i, l.Label)
		}
	}
}

func TestSmoothLabelsEmptyInput(t *testing.T) {
	out := SmoothLabels(nil, 3)
	if len(out) != 3 {
		t.Fatalf("got %d pages, want 3", len(out))
	}
	for _, l := range out {
		if l.Label != UnknownPartLabel || l.Confidence != 0 {
			t.Errorf("page %d: got %q@%d, want %q@0", l.PageIndex, l.Label, l.Confidence, UnknownPartLabel)
		}
	}
}
