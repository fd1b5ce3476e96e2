package parts

// SmoothLabels denoises a page-label sequence with four ordered passes:
//
//  1. forward-fill: unlabeled pages inherit the most recent labeled page's
//     label at ConfidencePropagated;
//  2. blip correction: a single page disagreeing with two agreeing neighbors
//     takes the neighbors' label, confidence capped at ConfidenceBlipCap;
//  3. front-matter fill: a still-unlabeled run at the document start inherits
//     the first labeled page's label at ConfidenceFrontMatter;
//  4. unanalyzed-page marking: page indices in [0, totalPages) absent from
//     the input are labeled UnknownPartLabel at confidence 0 and never
//     inherit a neighbor label.
//
// The input is expected sorted by PageIndex with unique indices. The result
// always covers exactly the indices 0..totalPages-1.
func SmoothLabels(labels []PageLabel, totalPages int) []PageLabel {
	smoothed := make([]PageLabel, len(labels))
	copy(smoothed, labels)

	forwardFill(smoothed)
	correctBlips(smoothed)
	fillFrontMatter(smoothed)

	return markUnanalyzed(smoothed, totalPages)
}

func forwardFill(labels []PageLabel) {
	lastLabel := ""
	for i := range labels {
		if labels[i].Label != "" {
			lastLabel = labels[i].Label
			continue
		}
		if lastLabel != "" {
			labels[i].Label = lastLabel
			labels[i].Confidence = ConfidencePropagated
		}
	}
}

// correctBlips overwrites isolated single-page deviations. A genuine part
// change almost never lasts exactly one page, so a lone disagreement between
// two agreeing neighbors is treated as extraction noise.
func correctBlips(labels []PageLabel) {
	for i := 1; i < len(labels)-1; i++ {
		prev, next := labels[i-1], labels[i+1]
		if prev.Label == "" || prev.Label != next.Label {
			continue
		}
		if labels[i].Label == prev.Label {
			continue
		}
		labels[i].Label = prev.Label
		conf := prev.Confidence
		if next.Confidence < conf {
			conf = next.Confidence
		}
		if conf > ConfidenceBlipCap {
			conf = ConfidenceBlipCap
		}
		labels[i].Confidence = conf
	}
}

// fillFrontMatter attributes leading unlabeled pages to the first part:
// title and cover pages belong to whatever comes first.
func fillFrontMatter(labels []PageLabel) {
	first := ""
	for _, l := range labels {
		if l.Label != "" {
			first = l.Label
			break
		}
	}
	if first == "" {
		return
	}
	for i := range labels {
		if labels[i].Label != "" {
			return
		}
		labels[i].Label = first
		labels[i].Confidence = ConfidenceFrontMatter
	}
}

// markUnanalyzed expands the sequence to the full page range. Pages the
// extractor never reported are a distinct failure mode from noisy analysis
// and must stay visibly distinct, so they get UnknownPartLabel at 0 rather
// than a propagated neighbor label.
func markUnanalyzed(labels []PageLabel, totalPages int) []PageLabel {
	byIndex := make(map[int]PageLabel, len(labels))
	for _, l := range labels {
		byIndex[l.PageIndex] = l
	}

	full := make([]PageLabel, 0, totalPages)
	for i := 0; i < totalPages; i++ {
		if l, ok := byIndex[i]; ok {
			full = append(full, l)
			continue
		}
		full = append(full, PageLabel{
			PageIndex:  i,
			Label:      UnknownPartLabel,
			Confidence: 0,
		})
	}
	return full
}
