package parts

import "math"

// AggregateConfidence reduces per-page confidence to one segmentation-quality
// score: the rounded mean, with pages in the first two page indices floored
// at ConfidenceFrontFloor before averaging. Front matter legitimately lacks
// instrument headers and must not be scored as a segmentation defect.
//
// Empty input yields 0.
func AggregateConfidence(labels []PageLabel) int {
	if len(labels) == 0 {
		return 0
	}

	sum := 0
	for _, l := range labels {
		c := l.Confidence
		if l.PageIndex < frontMatterFloorWindow && c < ConfidenceFrontFloor {
			c = ConfidenceFrontFloor
		}
		if c < 0 {
			c = 0
		} else if c > 100 {
			c = 100
		}
		sum += c
	}

	return int(math.Round(float64(sum) / float64(len(labels))))
}
