package parts

import "strings"

// minHeaderLength is the point below which header text is considered noise
// and the full page text is consulted instead.
const minHeaderLength = 3

// LabelPages assigns a canonical label and confidence to each page header.
// Pattern matches score ConfidenceExactMatch, fuzzy registry matches
// ConfidenceFuzzyMatch, everything else is left unlabeled at confidence 0.
//
// Headers are processed in the order given; callers own ordering and
// de-duplication of page indices (see Analyze).
func LabelPages(headers []PageHeader) []PageLabel {
	labels := make([]PageLabel, 0, len(headers))
	for _, h := range headers {
		labels = append(labels, labelPage(h))
	}
	return labels
}

func labelPage(h PageHeader) PageLabel {
	text := strings.TrimSpace(h.HeaderText)
	if len(text) < minHeaderLength {
		text = firstMeaningfulLine(h.FullText)
	}

	label := PageLabel{PageIndex: h.PageIndex, RawHeader: h.HeaderText}

	ni, kind := NormalizeLabel(text)
	switch kind {
	case MatchExact:
		label.Label = ni.Instrument
		label.Confidence = ConfidenceExactMatch
	case MatchFuzzy:
		label.Label = ni.Instrument
		label.Confidence = ConfidenceFuzzyMatch
	default:
		// MatchNone and MatchFallback both leave the page unlabeled; a
		// cleaned-raw fallback is good enough for segment metadata but too
		// weak to anchor a page on its own.
	}

	return label
}

// firstMeaningfulLine returns the first non-empty, non-sentinel line of the
// page text, used when the dedicated header region is empty or too short.
func firstMeaningfulLine(fullText string) string {
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsForbiddenLabel(line) {
			continue
		}
		return line
	}
	return ""
}
